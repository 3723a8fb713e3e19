// Package tx declares the transaction boundary services depend on. The
// PostgreSQL implementation lives in infrastructure/storage/postgres.
package tx

import "context"

// Manager runs fn atomically: fn's error rolls everything back, success
// commits. Nested calls join the transaction already in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds consistent read snapshots for multi-query reports.
type ReadOnlyManager interface {
	Manager
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

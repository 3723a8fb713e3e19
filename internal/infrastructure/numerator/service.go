// Package numerator provides the PostgreSQL date snapshot behind sequence
// numbers. It implements core/numerator.Generator.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "stockbook/internal/core/numerator"
	"stockbook/internal/infrastructure/storage/postgres"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tables maps each numbered kind to the table holding its dates.
var tables = map[corenumerator.Kind]string{
	corenumerator.KindPurchaseLine:  "purchase_lines",
	corenumerator.KindPurchaseBatch: "purchase_batches",
	corenumerator.KindSale:          "sales",
}

// Service loads distinct dates and builds numbering indexes from them.
type Service struct {
	querier func(ctx context.Context) Querier
	policy  corenumerator.Policy
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator that reads through txManager, so a snapshot taken
// inside a transaction sees that transaction's writes.
func New(txManager *postgres.TxManager, policy corenumerator.Policy) *Service {
	return &Service{
		querier: func(ctx context.Context) Querier { return txManager.GetQuerier(ctx) },
		policy:  policy,
	}
}

// NewWithQuerier creates a numerator over a fixed querier.
// Use for testing scenarios.
func NewWithQuerier(q Querier, policy corenumerator.Policy) *Service {
	return &Service{
		querier: func(context.Context) Querier { return q },
		policy:  policy,
	}
}

// Policy returns the configured ordering policy.
func (s *Service) Policy() corenumerator.Policy {
	return s.policy
}

// Index implements corenumerator.Generator.
func (s *Service) Index(ctx context.Context, kind corenumerator.Kind) (*corenumerator.Index, error) {
	dates, err := s.dates(ctx, kind)
	if err != nil {
		return nil, err
	}
	return corenumerator.NewIndex(dates, s.policy), nil
}

// Number implements corenumerator.Generator.
func (s *Service) Number(ctx context.Context, kind corenumerator.Kind, date time.Time) (int, error) {
	index, err := s.Index(ctx, kind)
	if err != nil {
		return 0, err
	}
	return index.Ordinal(date), nil
}

func (s *Service) dates(ctx context.Context, kind corenumerator.Kind) ([]time.Time, error) {
	table, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown numbering kind %q", kind)
	}

	sql := fmt.Sprintf(
		"SELECT COALESCE(array_agg(DISTINCT date ORDER BY date), '{}') FROM %s", table)

	var dates []time.Time
	if err := s.querier(ctx).QueryRow(ctx, sql).Scan(&dates); err != nil {
		return nil, fmt.Errorf("load %s dates: %w", kind, err)
	}
	return dates, nil
}

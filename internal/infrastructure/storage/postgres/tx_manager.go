package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockbook/internal/core/tx"
	"stockbook/pkg/logger"
)

var tracer = otel.Tracer("stockbook/postgres")

var _ tx.ReadOnlyManager = (*TxManager)(nil)

var errWriteInReadOnly = errors.New("write transaction requested inside a read-only one")

// Querier is what *pgxpool.Pool and pgx.Tx have in common.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager binds a transaction to the context passed to fn. Repositories
// resolve it with GetQuerier, so a service decides the transaction
// boundary without handing a tx around.
type TxManager struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

type activeTx struct {
	pgx.Tx
	readOnly bool
}

type activeTxKey struct{}

// NewTxManager creates a TxManager over pool with a 30s statement timeout.
func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool, statementTimeout: 30 * time.Second}
}

// WithStatementTimeout returns a copy of m using d; zero disables it.
func (m *TxManager) WithStatementTimeout(d time.Duration) *TxManager {
	cp := *m
	cp.statementTimeout = d
	return &cp
}

// RunInTransaction runs fn in a read committed transaction. A call made
// while a transaction is already bound to ctx joins it.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}, fn)
}

// ReadOnly runs fn in a repeatable read, read-only transaction so every
// statement sees the same snapshot.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (m *TxManager) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context) error) (err error) {
	ctx, span := tracer.Start(ctx, "postgres.tx", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("db.tx.isolation", string(opts.IsoLevel)),
		attribute.String("db.tx.access_mode", string(opts.AccessMode)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if outer, ok := ctx.Value(activeTxKey{}).(*activeTx); ok {
		if outer.readOnly && opts.AccessMode != pgx.ReadOnly {
			return errWriteInReadOnly
		}
		return fn(ctx)
	}

	pgTx, err := m.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if m.statementTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", m.statementTimeout.Milliseconds())
		if _, err := pgTx.Exec(ctx, stmt); err != nil {
			_ = pgTx.Rollback(ctx)
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	bound := &activeTx{Tx: pgTx, readOnly: opts.AccessMode == pgx.ReadOnly}
	if err := fn(context.WithValue(ctx, activeTxKey{}, bound)); err != nil {
		// ctx may already be cancelled; the rollback must still reach the server.
		if rbErr := pgTx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			logger.Error(ctx, "rollback failed", "error", rbErr, "cause", err)
		}
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetQuerier returns the transaction bound to ctx, or the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t, ok := ctx.Value(activeTxKey{}).(*activeTx); ok {
		return t.Tx
	}
	return m.pool
}

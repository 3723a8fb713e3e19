// Package postgres holds the pgx connection pool, the transaction manager
// and helpers shared by the repositories.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockbook/pkg/logger"
)

// PoolConfig sizes the connection pool. Zero durations keep pgx defaults.
type PoolConfig struct {
	DSN               string
	ApplicationName   string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// DefaultPoolConfig suits one small backend instance.
func DefaultPoolConfig(dsn string) PoolConfig {
	return PoolConfig{
		DSN:               dsn,
		ApplicationName:   "stockbook",
		MaxConns:          10,
		MinConns:          1,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
	}
}

// Pool is the process-wide pgx pool.
type Pool struct {
	*pgxpool.Pool
}

// NewPool connects and pings; a pool that cannot reach the server is closed.
func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = cfg.MinConns
	for dst, src := range map[*time.Duration]time.Duration{
		&pc.MaxConnLifetime:   cfg.MaxConnLifetime,
		&pc.MaxConnIdleTime:   cfg.MaxConnIdleTime,
		&pc.HealthCheckPeriod: cfg.HealthCheckPeriod,
	} {
		if src > 0 {
			*dst = src
		}
	}

	name := cfg.ApplicationName
	if name == "" {
		name = "stockbook"
	}
	pc.ConnConfig.RuntimeParams["application_name"] = name
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		// Document dates are compared in UTC.
		_, err := conn.Exec(ctx, "SET TIME ZONE 'UTC'")
		return err
	}

	p, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Pool{Pool: p}, nil
}

// Close is safe on a zero Pool.
func (p *Pool) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// LogStats writes the pool counters at info level.
func (p *Pool) LogStats(ctx context.Context) {
	s := p.Stat()
	logger.Info(ctx, "database pool stats",
		"total", s.TotalConns(),
		"acquired", s.AcquiredConns(),
		"idle", s.IdleConns(),
		"max", s.MaxConns(),
		"acquire_count", s.AcquireCount(),
		"acquire_wait", s.AcquireDuration(),
	)
}

// Package logger wraps zap with request-scoped fields carried in the context.
package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appctx "stockbook/internal/core/context"
)

// Logger is a sugared zap logger. Services usually reach it through the
// package-level helpers, which pick it up from the context.
type Logger struct {
	*zap.SugaredLogger
}

type ctxKey struct{}

// Config selects level, encoding and sinks.
type Config struct {
	Level       string   // debug | info | warn | error; anything else means info
	Format      string   // json | console; empty keeps the mode default
	Development bool     // colored console output and stack traces on warn
	OutputPaths []string // zap sink URLs, stdout when empty
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "json" || cfg.Format == "console" {
		zc.Encoding = cfg.Format
	}
	zc.OutputPaths = []string{"stdout"}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}

	z, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{z.Sugar()}, nil
}

// NewNop discards everything.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

var fallback = sync.OnceValue(func() *Logger {
	l, err := New(Config{Level: "info"})
	if err != nil {
		return NewNop()
	}
	return l
})

// WithContext returns l annotated with the trace of ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	trace := appctx.GetTrace(ctx)
	if trace == nil {
		return l
	}
	return &Logger{l.SugaredLogger.With("trace_id", trace.TraceID, "request_id", trace.RequestID)}
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a process-wide default,
// annotated with the request trace.
func FromContext(ctx context.Context) *Logger {
	l, ok := ctx.Value(ctxKey{}).(*Logger)
	if !ok {
		l = fallback()
	}
	return l.WithContext(ctx)
}

func Info(ctx context.Context, msg string, kv ...any)  { FromContext(ctx).Infow(msg, kv...) }
func Warn(ctx context.Context, msg string, kv ...any)  { FromContext(ctx).Warnw(msg, kv...) }
func Error(ctx context.Context, msg string, kv ...any) { FromContext(ctx).Errorw(msg, kv...) }

// Package main is the entry point for the stockbook API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockbook/internal/app"
	"stockbook/internal/config"
	v1 "stockbook/internal/infrastructure/http/v1"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/migrations"
	"stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Logger(cfg.App.IsDevelopment()))
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting stockbook server", "env", cfg.App.Env, "numbering", cfg.Numbering.Policy)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.ApplicationName = cfg.App.Name
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.Database.MigrateOnStart {
		if err := migrate(ctx, pool); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
	}

	txm := postgres.NewTxManager(pool).WithStatementTimeout(cfg.Database.StatementTimeout)

	// --- Services ---
	services, err := app.NewServices(txm, cfg.Numbering.Policy)
	if err != nil {
		log.Fatalw("failed to build services", "error", err)
	}

	if err := handlers.RegisterValidators(); err != nil {
		log.Fatalw("failed to register validators", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		DB:          pool,
		Services:    services,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Development: cfg.App.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	pool.LogStats(ctx)
	log.Info("server stopped")
}

func migrate(ctx context.Context, pool *postgres.Pool) error {
	m, err := migrations.New(pool.Pool)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up(ctx)
}

// Package main provides CLI for schema migrations.
// Usage: migrate up
//
//	migrate down
//	migrate version
//	migrate force <version>
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"stockbook/internal/config"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/migrations"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "--help", "-h":
		printUsage()
		return
	case "up", "down", "version", "force":
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Stockbook Migration CLI

Usage:
  migrate <command> [args]

Commands:
  up                Apply all pending migrations
  down              Roll back every migration
  version           Print the current schema version
  force <version>   Mark the schema as <version> without running it
  help              Show this help

Environment Variables:
  DATABASE_URL      PostgreSQL connection string (required)`)
}

func run(ctx context.Context, cmd string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := migrations.New(pool.Pool)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "up":
		return m.Up(ctx)
	case "down":
		return m.Down(ctx)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	case "force":
		if len(args) != 1 {
			return fmt.Errorf("force needs exactly one version argument")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return m.Force(ctx, version)
	}
	return nil
}

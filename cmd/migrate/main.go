package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"gametracker/internal/config"
	"gametracker/internal/platform/logging"
	"gametracker/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	slog.SetDefault(logging.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_FORMAT", "text")))

	if err := run(*command, *name); err != nil {
		slog.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(command, name string) error {
	dir := migrationsDir()

	if command == "create" {
		if name == "" {
			return errNameRequired
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return err
		}
		slog.Info("migration created", "name", name, "dir", dir)
		return nil
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, databaseDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return err
		}
		slog.Info("migrations applied")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return err
		}
		slog.Info("migration rolled back")
	case "status":
		return goose.StatusContext(ctx, db, dir)
	default:
		return errUnknownCommand(command)
	}
	return nil
}

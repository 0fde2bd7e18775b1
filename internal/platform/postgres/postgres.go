package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Open creates a pool and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}
	slog.Info("database connection OK", "dsn", RedactDSN(dsn))
	return pool, nil
}

// RedactDSN hides the userinfo part of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"spacebook/internal/migrations/postgres"
	"spacebook/pkg/logger"
)

const EnvTestDatabaseURL = "TEST_DATABASE_URL"

// NewTestPool connects to TEST_DATABASE_URL, applies the migrations and
// empties the tables. Tests are skipped when the variable is unset or the
// database is unreachable.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvTestDatabaseURL)
	if dsn == "" {
		t.Skipf("skipping Postgres integration tests: %s not set", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	cfg.MaxConns = 8

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skipping Postgres integration tests: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgres.Apply(ctx, pool, logger.Discard()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE reservations, spaces, users`); err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
	return pool
}

// Package dbtest provides an in-memory SQLite database with the API schema for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/jobs-api/internal/config"
	"github.com/redmonkez12/jobs-api/internal/database"
)

// New returns a fresh in-memory database with all tables created.
// The database is closed when the test ends.
func New(tb testing.TB) *bun.DB {
	tb.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := database.CreateSchema(ctx, db); err != nil {
		tb.Fatalf("create schema: %v", err)
	}

	return db
}

package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateSchema creates the tables and indexes the API needs if they are missing.
// The unique constraint on users.email is what makes duplicate registration fail atomically.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Job)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	_, err := db.NewCreateIndex().
		Model((*Job)(nil)).
		Index("jobs_created_by_idx").
		Column("created_by", "created_at").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create jobs index: %w", err)
	}

	return nil
}

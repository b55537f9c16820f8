package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	{"create manual_updates", `
CREATE TABLE IF NOT EXISTS manual_updates (
    id          BIGSERIAL PRIMARY KEY,
    company     TEXT NOT NULL,
    type        TEXT NOT NULL,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    date        TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	// 会社別の挿入順読み出し用
	{"index company,id", `CREATE INDEX IF NOT EXISTS idx_manual_updates_company_id ON manual_updates(company, id)`},
}

// MigrateUp creates the manual_updates table and its index if missing.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for _, step := range schema {
		if _, err := db.ExecContext(ctx, step.sql); err != nil {
			return fmt.Errorf("migrate %s: %w", step.name, err)
		}
	}
	return nil
}

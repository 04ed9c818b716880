package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admin_audit_log (
		id          UUID PRIMARY KEY,
		action      TEXT NOT NULL,
		subject_id  TEXT NOT NULL DEFAULT '',
		payload     JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS admin_audit_log_created_at_idx ON admin_audit_log (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS admin_audit_log_subject_idx ON admin_audit_log (action, subject_id)`,
}

// ApplySchema creates the tables the console owns. Every statement is
// idempotent.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

package db

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS workflow_sessions (
	session_id      TEXT PRIMARY KEY,
	assessment_type TEXT NOT NULL,
	project_name    TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT 'created',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS workflow_steps (
	id           BIGSERIAL PRIMARY KEY,
	session_id   TEXT NOT NULL REFERENCES workflow_sessions(session_id),
	tool         TEXT NOT NULL,
	success      BOOLEAN NOT NULL,
	output       JSONB,
	error_text   TEXT NOT NULL DEFAULT '',
	completed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workflow_steps_session ON workflow_steps(session_id);
`

// Migrate creates the audit tables if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

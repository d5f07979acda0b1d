package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openimpact/aia-engine/internal/types"
)

// RecordSessionCreated persists a new workflow session record
func (db *DB) RecordSessionCreated(ctx context.Context, sessionID, assessmentType, projectName string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO workflow_sessions (session_id, assessment_type, project_name, state)
		 VALUES ($1, $2, $3, 'created')`,
		sessionID, assessmentType, projectName,
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// RecordStep appends one executed step to a session's audit trail
func (db *DB) RecordStep(ctx context.Context, sessionID string, record types.StepRecord) error {
	var outputJSON []byte
	if record.Output != nil {
		var err error
		outputJSON, err = json.Marshal(record.Output)
		if err != nil {
			return fmt.Errorf("failed to marshal step output: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO workflow_steps (session_id, tool, success, output, error_text, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sessionID, record.Tool, record.Success, outputJSON, record.Error, record.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}
	return nil
}

// RecordSessionState updates the persisted state of a session
func (db *DB) RecordSessionState(ctx context.Context, sessionID, state string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE workflow_sessions SET state = $1, updated_at = NOW() WHERE session_id = $2`,
		state, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to record session state: %w", err)
	}
	return nil
}

// GetSession retrieves one persisted session, or nil when not found
func (db *DB) GetSession(ctx context.Context, sessionID string) (*SessionRow, error) {
	var row SessionRow
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, assessment_type, project_name, state, created_at, updated_at
		 FROM workflow_sessions WHERE session_id = $1`,
		sessionID,
	).Scan(&row.SessionID, &row.AssessmentType, &row.ProjectName, &row.State, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &row, nil
}

// ListSteps retrieves a session's audit trail in execution order
func (db *DB) ListSteps(ctx context.Context, sessionID string) ([]StepRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, tool, success, output, error_text, completed_at
		 FROM workflow_steps WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []StepRow
	for rows.Next() {
		var step StepRow
		var outputJSON []byte
		if err := rows.Scan(&step.ID, &step.SessionID, &step.Tool, &step.Success,
			&outputJSON, &step.ErrorText, &step.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		if outputJSON != nil {
			_ = json.Unmarshal(outputJSON, &step.Output)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

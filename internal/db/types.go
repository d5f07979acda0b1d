package db

import "time"

// SessionRow is one persisted workflow session record
type SessionRow struct {
	SessionID      string
	AssessmentType string
	ProjectName    string
	State          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StepRow is one persisted workflow step record
type StepRow struct {
	ID          int64
	SessionID   string
	Tool        string
	Success     bool
	Output      map[string]interface{}
	ErrorText   string
	CompletedAt time.Time
}

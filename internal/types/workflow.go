// Package types provides type definitions for structured data used throughout the aia-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Workflow session states
const (
	SessionStateCreated    = "created"
	SessionStateInProgress = "in_progress"
	SessionStateCompleted  = "completed"
	SessionStateFailed     = "failed"
)

// StepRecord captures the outcome of one executed workflow tool
type StepRecord struct {
	Tool        string      `json:"tool"`
	Success     bool        `json:"success"`
	Output      interface{} `json:"output,omitempty"`
	Error       string      `json:"error,omitempty"`
	CompletedAt time.Time   `json:"completed_at"`
}

// WorkflowStatus is the read-only view of a workflow session
type WorkflowStatus struct {
	SessionID          string   `json:"session_id"`
	AssessmentType     string   `json:"assessment_type"`
	State              string   `json:"state"`
	ProgressPercentage float64  `json:"progress_percentage"`
	PlannedSteps       []string `json:"planned_steps"`
	CompletedTools     []string `json:"completed_tools"`
}

// Package workflow provides the session-scoped state machine that
// sequences assessment tools and tracks per-step completion.
package workflow

import "fmt"

// UnknownAssessmentTypeError indicates a workflow was requested for an
// assessment type with no planned tool sequence.
type UnknownAssessmentTypeError struct {
	AssessmentType string
}

func (e *UnknownAssessmentTypeError) Error() string {
	return fmt.Sprintf("unknown assessment type: %s", e.AssessmentType)
}

// SessionNotFoundError indicates the session id is not in the registry
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("workflow session not found: %s", e.SessionID)
}

// StepInProgressError indicates a concurrent step execution was attempted
// against a session that is already running a step. Step execution within
// one session is strictly serialized; the second caller is rejected, never
// queued behind a running step.
type StepInProgressError struct {
	SessionID string
}

func (e *StepInProgressError) Error() string {
	return fmt.Sprintf("session %s is already executing a step", e.SessionID)
}

package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/export"
	"github.com/openimpact/aia-engine/internal/types"
)

// Session is one workflow's state. All mutation goes through the registry's
// step-execution methods; external callers only read status.
type Session struct {
	mu sync.Mutex

	ID                 string
	AssessmentType     string
	ProjectName        string
	ProjectDescription string
	Answers            []types.Answer

	PlannedSteps   []string
	CompletedSteps []types.StepRecord
	State          string

	// Accumulated step outputs, consumed by later steps.
	validation *types.ValidationResult
	score      *types.ScoreResult
	official   *types.OfficialData
	advisory   *types.AdvisoryAnalysis
}

func (s *Session) terminal() bool {
	return s.State == types.SessionStateCompleted || s.State == types.SessionStateFailed
}

// Auditor receives step records for persistence. Implementations are
// best-effort: the workflow logs and continues when auditing fails.
type Auditor interface {
	RecordSessionCreated(ctx context.Context, sessionID, assessmentType, projectName string) error
	RecordStep(ctx context.Context, sessionID string, record types.StepRecord) error
	RecordSessionState(ctx context.Context, sessionID, state string) error
}

// Deps are the collaborators workflow steps execute against
type Deps struct {
	Survey   *types.Survey
	Advisor  advisory.Generator
	Exporter export.Exporter
	Auditor  Auditor // optional
}

// Registry owns all workflow sessions. Sessions are independent: separate
// callers may advance different sessions concurrently without interference.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
}

// NewRegistry creates an empty session registry with the given
// collaborators.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// CreateWorkflow resolves the assessment type to its fixed tool sequence
// and registers a new session in the created state.
func (r *Registry) CreateWorkflow(assessmentType, projectName, projectDescription string, answers []types.Answer) (*Session, error) {
	planned, err := PlannedSteps(assessmentType)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:                 uuid.New().String(),
		AssessmentType:     assessmentType,
		ProjectName:        projectName,
		ProjectDescription: projectDescription,
		Answers:            answers,
		PlannedSteps:       planned,
		CompletedSteps:     []types.StepRecord{},
		State:              types.SessionStateCreated,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	if r.deps.Auditor != nil {
		if err := r.deps.Auditor.RecordSessionCreated(context.Background(), session.ID, assessmentType, projectName); err != nil {
			logAuditFailure(session.ID, err)
		}
	}

	return session, nil
}

// Get returns the session for an id, or a SessionNotFoundError.
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	return session, nil
}

// GetStatus returns a read-only view of a session's progress. It never
// mutates session state.
func (r *Registry) GetStatus(sessionID string) (*types.WorkflowStatus, error) {
	session, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	completed := make([]string, len(session.CompletedSteps))
	for i, record := range session.CompletedSteps {
		completed[i] = record.Tool
	}

	progress := 0.0
	if len(session.PlannedSteps) > 0 {
		progress = float64(len(session.CompletedSteps)) / float64(len(session.PlannedSteps)) * 100
	}

	planned := make([]string, len(session.PlannedSteps))
	copy(planned, session.PlannedSteps)

	return &types.WorkflowStatus{
		SessionID:          session.ID,
		AssessmentType:     session.AssessmentType,
		State:              session.State,
		ProgressPercentage: progress,
		PlannedSteps:       planned,
		CompletedTools:     completed,
	}, nil
}

package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/assessment"
	"github.com/openimpact/aia-engine/internal/export"
	"github.com/openimpact/aia-engine/internal/scoring"
	"github.com/openimpact/aia-engine/internal/survey"
	"github.com/openimpact/aia-engine/internal/types"
	"github.com/openimpact/aia-engine/internal/validation"
)

// StepOutcome is what the caller receives from one step execution
type StepOutcome struct {
	SessionID       string      `json:"session_id"`
	Tool            string      `json:"tool,omitempty"`
	Success         bool        `json:"success"`
	Output          interface{} `json:"output,omitempty"`
	Error           string      `json:"error,omitempty"`
	State           string      `json:"state"`
	AlreadyTerminal bool        `json:"already_terminal,omitempty"`
}

// ExecuteNextStep runs the next planned tool against the session's
// accumulated context and records the result. Re-invocation after the
// session reached a terminal state is a no-op returning an explicit
// already-terminal outcome; completed steps are never re-run. A concurrent
// call against the same session is rejected with a StepInProgressError.
func (r *Registry) ExecuteNextStep(ctx context.Context, sessionID string) (*StepOutcome, error) {
	session, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if !session.mu.TryLock() {
		return nil, &StepInProgressError{SessionID: sessionID}
	}
	defer session.mu.Unlock()

	if session.terminal() {
		return &StepOutcome{
			SessionID:       session.ID,
			Success:         true,
			State:           session.State,
			AlreadyTerminal: true,
		}, nil
	}

	tool := session.PlannedSteps[len(session.CompletedSteps)]
	output, stepErr := r.runTool(ctx, session, tool)

	record := types.StepRecord{
		Tool:        tool,
		Success:     stepErr == nil,
		Output:      output,
		CompletedAt: time.Now().UTC(),
	}
	if stepErr != nil {
		record.Error = stepErr.Error()
	}
	session.CompletedSteps = append(session.CompletedSteps, record)

	switch {
	case stepErr != nil && !StepTable[tool].Recoverable:
		session.State = types.SessionStateFailed
	case len(session.CompletedSteps) == len(session.PlannedSteps):
		session.State = types.SessionStateCompleted
	default:
		session.State = types.SessionStateInProgress
	}

	if r.deps.Auditor != nil {
		if err := r.deps.Auditor.RecordStep(ctx, session.ID, record); err != nil {
			logAuditFailure(session.ID, err)
		}
		if err := r.deps.Auditor.RecordSessionState(ctx, session.ID, session.State); err != nil {
			logAuditFailure(session.ID, err)
		}
	}

	return &StepOutcome{
		SessionID: session.ID,
		Tool:      tool,
		Success:   record.Success,
		Output:    record.Output,
		Error:     record.Error,
		State:     session.State,
	}, nil
}

// AutoExecute advances the session by repeatedly invoking ExecuteNextStep,
// up to maxSteps times or until the session is terminal or a step fails,
// whichever comes first. Each step keeps its individual bookkeeping; the
// result is identical to the same number of manual calls.
func (r *Registry) AutoExecute(ctx context.Context, sessionID string, maxSteps int) ([]*StepOutcome, error) {
	var outcomes []*StepOutcome

	for i := 0; i < maxSteps; i++ {
		outcome, err := r.ExecuteNextStep(ctx, sessionID)
		if err != nil {
			return outcomes, err
		}
		if outcome.AlreadyTerminal {
			break
		}
		outcomes = append(outcomes, outcome)
		if outcome.State == types.SessionStateCompleted || outcome.State == types.SessionStateFailed {
			break
		}
		// A recoverable failure halts automatic advancement; the caller
		// decides whether to continue manually.
		if !outcome.Success {
			break
		}
	}

	return outcomes, nil
}

// runTool dispatches one tool against the session context. The session
// mutex is held by the caller.
func (r *Registry) runTool(ctx context.Context, s *Session, tool string) (interface{}, error) {
	switch tool {
	case ToolValidateDescription:
		return r.runValidate(s)
	case ToolComputeScore:
		return r.runComputeScore(s)
	case ToolEstimateScore:
		return r.runEstimateScore(s)
	case ToolGenerateAdvisory:
		return r.runGenerateAdvisory(ctx, s)
	case ToolExportReport:
		return r.runExportReport(s)
	default:
		return nil, fmt.Errorf("no executor for tool %s", tool)
	}
}

func (r *Registry) runValidate(s *Session) (interface{}, error) {
	v := validation.Validate(s.ProjectName, s.ProjectDescription)
	s.validation = v
	if !v.IsValid {
		// An under-specified description must never reach scoring; the
		// failed validation sinks the session.
		return v, fmt.Errorf("validation_failed: %d of %d areas covered, missing: %s",
			v.AreasCovered, v.AreasRequired, strings.Join(v.AreasMissing, ", "))
	}
	return v, nil
}

func (r *Registry) runComputeScore(s *Session) (interface{}, error) {
	result, err := scoring.Score(r.deps.Survey, s.Answers)
	if err != nil {
		return nil, err
	}
	s.score = result
	return result, nil
}

func (r *Registry) runEstimateScore(s *Session) (interface{}, error) {
	estimate, matched := assessment.EstimateScore(s.ProjectName, s.ProjectDescription)
	s.official = &types.OfficialData{
		EstimatedScore:   estimate,
		MaxPossibleScore: survey.MaxPossibleScore(r.deps.Survey),
		ImpactLevel:      scoring.ImpactLevelForScore(estimate),
		Methodology:      scoring.Methodology,
		Validation:       s.validation,
		SignalsMatched:   matched,
	}
	return s.official, nil
}

func (r *Registry) runGenerateAdvisory(ctx context.Context, s *Session) (interface{}, error) {
	if r.deps.Advisor == nil {
		return nil, fmt.Errorf("no advisory generator configured")
	}

	req := advisory.Request{
		ProjectName:        s.ProjectName,
		ProjectDescription: s.ProjectDescription,
	}
	switch {
	case s.score != nil:
		req.ImpactLevel = s.score.ImpactLevel
		req.EstimatedScore = s.score.TotalScore
	case s.official != nil:
		req.ImpactLevel = s.official.ImpactLevel
		req.EstimatedScore = s.official.EstimatedScore
	}
	if s.validation != nil {
		req.AreasMissing = s.validation.AreasMissing
	}

	analysis, err := r.deps.Advisor.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("advisory generation failed: %w", err)
	}
	s.advisory = analysis
	return analysis, nil
}

func (r *Registry) runExportReport(s *Session) (interface{}, error) {
	if r.deps.Exporter == nil {
		return nil, fmt.Errorf("no exporter configured")
	}

	report := export.Report{
		ProjectName:        s.ProjectName,
		ProjectDescription: s.ProjectDescription,
	}
	if s.score != nil {
		report.Outcome = &types.AssessmentOutcome{
			Status:     types.StatusCompleted,
			Score:      s.score,
			Validation: s.validation,
		}
		// Advisory output from an earlier step goes into the report as
		// its own clearly labeled block, never merged into the official
		// result.
		report.Advisory = s.advisory
		if s.advisory != nil {
			report.Notices = assessment.ComplianceNotices
		}
	} else {
		report.Preview = &types.PreviewOutcome{
			Status:            types.StatusCompleted,
			OfficialData:      s.official,
			AdvisoryAnalysis:  s.advisory,
			ComplianceNotices: assessment.ComplianceNotices,
			Validation:        s.validation,
		}
	}

	// The assessment result is passed through unmodified; only the
	// exporter's success or failure is surfaced into the step record.
	result := r.deps.Exporter.Export(report)
	if !result.Success {
		return result, fmt.Errorf("export failed: %s", result.Error)
	}
	return result, nil
}

// ExportReport renders a report for a session outside the planned step
// sequence. The session keeps whatever state it is in; only the exporter
// runs.
func (r *Registry) ExportReport(sessionID string) (*types.ExportResult, error) {
	session, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if !session.mu.TryLock() {
		return nil, &StepInProgressError{SessionID: sessionID}
	}
	defer session.mu.Unlock()

	out, exportErr := r.runExportReport(session)
	result, ok := out.(types.ExportResult)
	if !ok {
		if exportErr != nil {
			return nil, exportErr
		}
		return nil, fmt.Errorf("exporter returned no result")
	}
	return &result, nil
}

func logAuditFailure(sessionID string, err error) {
	log.Printf("Warning: failed to audit workflow session %s: %v", sessionID, err)
}

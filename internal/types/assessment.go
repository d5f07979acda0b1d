// Package types provides type definitions for structured data used throughout the aia-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ImpactLevel is the discrete risk tier assigned from a total score
type ImpactLevel string

const (
	ImpactLevelI   ImpactLevel = "I"
	ImpactLevelII  ImpactLevel = "II"
	ImpactLevelIII ImpactLevel = "III"
	ImpactLevelIV  ImpactLevel = "IV"
)

// Answer represents the selected choice values for one question.
// Multiple values are only valid for multi-choice questions.
type Answer struct {
	QuestionID     string   `json:"question_id"`
	SelectedValues []string `json:"selected_values"`
}

// QuestionScore is one entry of the per-question score breakdown
type QuestionScore struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
}

// ScoreResult represents the deterministic output of the scoring engine.
// It is recomputed on demand and never persisted independently of the
// inputs that produced it.
type ScoreResult struct {
	TotalScore       int             `json:"total_score"`
	MaxPossibleScore int             `json:"max_possible_score"`
	ImpactLevel      ImpactLevel     `json:"impact_level"`
	Breakdown        []QuestionScore `json:"per_question_breakdown"`
}

// ValidationResult represents the description validator's verdict.
// It is a pure function of (projectName, projectDescription).
type ValidationResult struct {
	IsValid       bool     `json:"is_valid"`
	AreasCovered  int      `json:"areas_covered"`
	AreasRequired int      `json:"areas_required"`
	AreasMissing  []string `json:"areas_missing"`
	TotalWords    int      `json:"total_words"`
}

// Assessment outcome statuses
const (
	StatusCompleted        = "completed"
	StatusValidationFailed = "validation_failed"
)

// AssessmentOutcome is the result of a full question-by-question assessment
type AssessmentOutcome struct {
	Status     string            `json:"status"`
	Score      *ScoreResult      `json:"score_result,omitempty"`
	Validation *ValidationResult `json:"validation"`
}

// OfficialData holds only values produced by the deterministic scoring
// engine and validator. Advisory content must never write into this block.
type OfficialData struct {
	EstimatedScore   int               `json:"estimated_score"`
	MaxPossibleScore int               `json:"max_possible_score"`
	ImpactLevel      ImpactLevel       `json:"impact_level"`
	Methodology      string            `json:"methodology"`
	Validation       *ValidationResult `json:"validation"`
	SignalsMatched   []string          `json:"signals_matched,omitempty"`
}

// AdvisoryAnalysis holds externally generated, non-deterministic guidance.
// It is always labeled as advisory and kept disjoint from OfficialData.
type AdvisoryAnalysis struct {
	GapAnalysis      string   `json:"gap_analysis,omitempty"`
	PlanningGuidance string   `json:"planning_guidance,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
	Source           string   `json:"source"`
}

// PreviewOutcome is the result of a functional preview. The three blocks
// are structurally disjoint so advisory content cannot clobber official
// numbers.
type PreviewOutcome struct {
	Status            string            `json:"status"`
	OfficialData      *OfficialData     `json:"official_data,omitempty"`
	AdvisoryAnalysis  *AdvisoryAnalysis `json:"advisory_analysis,omitempty"`
	ComplianceNotices []string          `json:"compliance_notices,omitempty"`
	Validation        *ValidationResult `json:"validation,omitempty"`
}

// ExportResult represents the outcome of rendering an assessment report
type ExportResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	Error    string `json:"error,omitempty"`
}

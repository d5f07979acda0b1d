package types

import "github.com/go-playground/validator/v10"

// AssessProjectRequest is the request body for a full survey-based assessment.
type AssessProjectRequest struct {
	ProjectName        string   `json:"projectName" validate:"required,min=1"`
	ProjectDescription string   `json:"projectDescription" validate:"required,min=1"`
	Answers            []Answer `json:"answers" validate:"required,min=1"`
}

// FunctionalPreviewRequest is the request body for a heuristic preview assessment.
type FunctionalPreviewRequest struct {
	ProjectName        string `json:"projectName" validate:"required,min=1"`
	ProjectDescription string `json:"projectDescription" validate:"required,min=1"`
}

// CreateWorkflowRequest is the request body for starting a workflow session.
type CreateWorkflowRequest struct {
	AssessmentType     string   `json:"assessmentType" validate:"required"`
	ProjectName        string   `json:"projectName" validate:"required,min=1"`
	ProjectDescription string   `json:"projectDescription" validate:"required,min=1"`
	Answers            []Answer `json:"answers,omitempty"`
}

// ExecuteWorkflowStepRequest is the request body for advancing a workflow
// session. StepsToExecute asks for that many planned steps in one call;
// when omitted, exactly one step runs.
type ExecuteWorkflowStepRequest struct {
	SessionID      string `json:"sessionId" validate:"required"`
	StepsToExecute int    `json:"stepsToExecute,omitempty" validate:"omitempty,min=1"`
}

// ExportReportRequest is the request body for rendering a session report.
type ExportReportRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// Validate validates the AssessProjectRequest using the validator.
func (r *AssessProjectRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateWorkflowRequest using the validator.
func (r *CreateWorkflowRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

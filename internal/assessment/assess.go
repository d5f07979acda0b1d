package assessment

import (
	"fmt"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/scoring"
	"github.com/openimpact/aia-engine/internal/types"
	"github.com/openimpact/aia-engine/internal/validation"
)

// Orchestrator runs assessment operations against one loaded survey.
// Callers invoke it without managing any session state.
type Orchestrator struct {
	survey  *types.Survey
	advisor advisory.Generator
}

// New creates an orchestrator for the given survey and advisory generator.
// The advisor may be nil; preview results then carry no advisory block.
func New(s *types.Survey, advisor advisory.Generator) *Orchestrator {
	return &Orchestrator{survey: s, advisor: advisor}
}

// Survey returns the loaded survey the orchestrator assesses against.
func (o *Orchestrator) Survey() *types.Survey {
	return o.survey
}

// AssessFull validates the project description and, if it passes, scores
// the supplied answers. A failed validation short-circuits with status
// validation_failed and no score: scoring never runs against an
// under-specified description.
func (o *Orchestrator) AssessFull(projectName, projectDescription string, answers []types.Answer) (*types.AssessmentOutcome, error) {
	v := validation.Validate(projectName, projectDescription)
	if !v.IsValid {
		return &types.AssessmentOutcome{
			Status:     types.StatusValidationFailed,
			Validation: v,
		}, nil
	}

	score, err := scoring.Score(o.survey, answers)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}

	return &types.AssessmentOutcome{
		Status:     types.StatusCompleted,
		Score:      score,
		Validation: v,
	}, nil
}

package assessment

import (
	"context"
	"log"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/scoring"
	"github.com/openimpact/aia-engine/internal/survey"
	"github.com/openimpact/aia-engine/internal/types"
	"github.com/openimpact/aia-engine/internal/validation"
)

// FunctionalPreview estimates the impact level from the project description
// alone, without explicit questionnaire answers. The result carries three
// structurally disjoint blocks: official_data (deterministic estimate and
// methodology), advisory_analysis (externally generated guidance), and
// compliance_notices (static disclaimers). The advisory generator receives
// the official values read-only and its output lands in its own block, so
// it can never overwrite an officially computed field.
func (o *Orchestrator) FunctionalPreview(ctx context.Context, projectName, projectDescription string) (*types.PreviewOutcome, error) {
	v := validation.Validate(projectName, projectDescription)
	if !v.IsValid {
		return &types.PreviewOutcome{
			Status:     types.StatusValidationFailed,
			Validation: v,
		}, nil
	}

	estimate, matched := EstimateScore(projectName, projectDescription)
	official := &types.OfficialData{
		EstimatedScore:   estimate,
		MaxPossibleScore: survey.MaxPossibleScore(o.survey),
		ImpactLevel:      scoring.ImpactLevelForScore(estimate),
		Methodology:      scoring.Methodology,
		Validation:       v,
		SignalsMatched:   matched,
	}

	outcome := &types.PreviewOutcome{
		Status:            types.StatusCompleted,
		OfficialData:      official,
		ComplianceNotices: ComplianceNotices,
		Validation:        v,
	}

	if o.advisor != nil {
		analysis, err := o.advisor.Generate(ctx, advisory.Request{
			ProjectName:        projectName,
			ProjectDescription: projectDescription,
			ImpactLevel:        official.ImpactLevel,
			EstimatedScore:     official.EstimatedScore,
			AreasMissing:       v.AreasMissing,
		})
		if err != nil {
			// Advisory content is supplementary; a generation failure
			// degrades the preview, it does not fail it.
			log.Printf("Warning: advisory generation failed: %v", err)
		} else {
			outcome.AdvisoryAnalysis = analysis
		}
	}

	return outcome, nil
}

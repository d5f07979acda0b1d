package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/openimpact/aia-engine/internal/types"
)

// StaticGenerator produces template-based advisory content without calling
// any external service. Used when no API key is configured and as the
// fallback when generation fails.
type StaticGenerator struct{}

// NewStaticGenerator creates a static advisory generator
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

// Generate assembles advisory text from fixed templates keyed on the
// impact level and the validator's missing-area diagnostics.
func (g *StaticGenerator) Generate(_ context.Context, req Request) (*types.AdvisoryAnalysis, error) {
	analysis := &types.AdvisoryAnalysis{
		Source:           "static_template",
		PlanningGuidance: planningGuidance(req.ImpactLevel),
	}

	if len(req.AreasMissing) > 0 {
		analysis.GapAnalysis = fmt.Sprintf(
			"The project description does not yet address: %s. Expand these areas before a formal assessment.",
			strings.Join(req.AreasMissing, ", "))
	} else {
		analysis.GapAnalysis = "The project description addresses all required topic areas."
	}

	analysis.Recommendations = recommendations(req.ImpactLevel)
	return analysis, nil
}

// Close is a no-op for the static generator
func (g *StaticGenerator) Close() error { return nil }

func planningGuidance(level types.ImpactLevel) string {
	switch level {
	case types.ImpactLevelI:
		return "Plan for baseline documentation and periodic self-review of the system's decisions."
	case types.ImpactLevelII:
		return "Plan for documented human review points and notice to affected individuals."
	case types.ImpactLevelIII:
		return "Plan for qualified human oversight of every consequential decision and a published recourse process."
	case types.ImpactLevelIV:
		return "Plan for the highest level of governance: external review, human sign-off on every decision, and pre-deployment approval."
	default:
		return "Complete the questionnaire to receive level-specific planning guidance."
	}
}

func recommendations(level types.ImpactLevel) []string {
	base := []string{
		"Document data provenance for every input the system consumes",
		"Record the rationale for each design decision affecting individuals",
	}
	if level == types.ImpactLevelIII || level == types.ImpactLevelIV {
		base = append(base,
			"Commission an independent peer review before deployment",
			"Establish a standing recourse channel for affected individuals")
	}
	return base
}

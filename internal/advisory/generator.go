// Package advisory produces supplementary planning guidance layered on top
// of officially computed assessment data. Advisory content is generated
// externally (or from static templates) and is always kept separate from
// the deterministic scoring output.
package advisory

import (
	"context"

	"github.com/openimpact/aia-engine/internal/types"
)

// Request carries the context an advisory generator works from. The score
// fields are read-only inputs; generators never produce official numbers.
type Request struct {
	ProjectName        string
	ProjectDescription string
	ImpactLevel        types.ImpactLevel
	EstimatedScore     int
	AreasMissing       []string
}

// Generator produces advisory analysis for an assessment. Implementations
// may call slow or fallible external services; callers treat a failure as
// a degraded (static) advisory, never as an assessment failure.
type Generator interface {
	Generate(ctx context.Context, req Request) (*types.AdvisoryAnalysis, error)
	Close() error
}

// NewGenerator returns a Gemini-backed generator when an API key is
// configured, and the deterministic static generator otherwise.
func NewGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return NewStaticGenerator(), nil
	}
	return NewGeminiGenerator(ctx, apiKey)
}

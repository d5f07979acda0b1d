package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/openimpact/aia-engine/internal/prompts"
	"github.com/openimpact/aia-engine/internal/types"
)

const geminiModel = "gemini-2.5-flash"

// GeminiGenerator produces advisory analysis through the Gemini API.
type GeminiGenerator struct {
	client   *genai.Client
	fallback *StaticGenerator
}

// NewGeminiGenerator creates a Gemini-backed advisory generator
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:   client,
		fallback: NewStaticGenerator(),
	}, nil
}

// Generate requests gap analysis, planning guidance, and recommendations
// from the model. On any generation failure it degrades to the static
// generator rather than failing the assessment.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*types.AdvisoryAnalysis, error) {
	data := map[string]string{
		"ProjectName":        req.ProjectName,
		"ProjectDescription": req.ProjectDescription,
		"ImpactLevel":        string(req.ImpactLevel),
		"EstimatedScore":     fmt.Sprintf("%d", req.EstimatedScore),
		"AreasMissing":       strings.Join(req.AreasMissing, ", "),
	}

	// The three generations are independent; run them concurrently.
	var gap, guidance string
	var recs []string

	g2, gCtx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		var err error
		gap, err = g.generateText(gCtx, "gap_analysis", data)
		return err
	})
	g2.Go(func() error {
		var err error
		guidance, err = g.generateText(gCtx, "planning_guidance", data)
		return err
	})
	g2.Go(func() error {
		var err error
		recs, err = g.generateRecommendations(gCtx, data)
		if err != nil {
			// Recommendations alone degrade to the static list.
			recs = recommendations(req.ImpactLevel)
		}
		return nil
	})

	if err := g2.Wait(); err != nil {
		return g.fallback.Generate(ctx, req)
	}

	return &types.AdvisoryAnalysis{
		GapAnalysis:      gap,
		PlanningGuidance: guidance,
		Recommendations:  recs,
		Source:           "gemini",
	}, nil
}

// Close releases resources held by the underlying client
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiGenerator) generateText(ctx context.Context, promptKey string, data map[string]string) (string, error) {
	template, err := prompts.Get("advisory.json", promptKey)
	if err != nil {
		return "", err
	}

	model := g.client.GenerativeModel(geminiModel)
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, genai.Text(prompts.Format(template, data)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

func (g *GeminiGenerator) generateRecommendations(ctx context.Context, data map[string]string) ([]string, error) {
	template, err := prompts.Get("advisory.json", "recommendations")
	if err != nil {
		return nil, err
	}

	model := g.client.GenerativeModel(geminiModel)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompts.Format(template, data)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	var recs []string
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &recs); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return recs, nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openimpact/aia-engine/internal/types"
)

func TestPrintValidationResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationResult(&types.ValidationResult{
		IsValid:       false,
		AreasCovered:  2,
		AreasRequired: 6,
		AreasMissing:  []string{"data sources", "oversight and governance"},
		TotalWords:    80,
	})

	out := buf.String()
	assert.Contains(t, out, "Description Validation")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "Areas covered: 2 of 6")
	assert.Contains(t, out, "data sources")
}

func TestPrintScoreResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreResult(&types.ScoreResult{
		TotalScore:       42,
		MaxPossibleScore: 30,
		ImpactLevel:      types.ImpactLevelII,
		Breakdown: []types.QuestionScore{
			{QuestionID: "businessDrivers", Score: 3},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Total score:  42 / 30")
	assert.Contains(t, out, "Impact level: II")
	assert.Contains(t, out, "businessDrivers")
}

func TestPrintScoreResultTruncatesBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	breakdown := make([]types.QuestionScore, 12)
	for i := range breakdown {
		breakdown[i] = types.QuestionScore{QuestionID: "q", Score: 1}
	}
	p.PrintScoreResult(&types.ScoreResult{Breakdown: breakdown})

	assert.Contains(t, buf.String(), "... and 4 more")
}

func TestPrintWorkflowStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWorkflowStatus(&types.WorkflowStatus{
		SessionID:          "abc-123",
		AssessmentType:     "quick_scan",
		State:              types.SessionStateInProgress,
		ProgressPercentage: 50,
		PlannedSteps:       []string{"validate_description", "estimate_score"},
		CompletedTools:     []string{"validate_description"},
	})

	out := buf.String()
	assert.Contains(t, out, "abc-123")
	assert.Contains(t, out, "Progress: 50%")
	assert.Contains(t, out, "[✓] validate_description")
	assert.Contains(t, out, "[ ] estimate_score")
}

func TestNilInputsPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationResult(nil)
	p.PrintScoreResult(nil)
	p.PrintWorkflowStatus(nil)

	assert.Zero(t, buf.Len())
}

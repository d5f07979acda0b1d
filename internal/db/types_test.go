package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionRow(t *testing.T) {
	now := time.Now()
	row := &SessionRow{
		SessionID:      uuid.New().String(),
		AssessmentType: "full_assessment",
		ProjectName:    "Benefit Triage",
		State:          "in_progress",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	assert.NotEmpty(t, row.SessionID)
	assert.Equal(t, "full_assessment", row.AssessmentType)
	assert.Equal(t, "Benefit Triage", row.ProjectName)
	assert.Equal(t, "in_progress", row.State)
	assert.Equal(t, now, row.CreatedAt)
}

func TestStepRow(t *testing.T) {
	row := &StepRow{
		ID:        1,
		SessionID: uuid.New().String(),
		Tool:      "compute_score",
		Success:   true,
		Output:    map[string]interface{}{"total_score": float64(42)},
	}

	assert.Equal(t, int64(1), row.ID)
	assert.Equal(t, "compute_score", row.Tool)
	assert.True(t, row.Success)
	assert.Equal(t, float64(42), row.Output["total_score"])
	assert.Empty(t, row.ErrorText)
}

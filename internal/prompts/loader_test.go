package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAdvisoryPrompts(t *testing.T) {
	ClearCache()

	for _, key := range []string{"gap_analysis", "planning_guidance", "recommendations"} {
		prompt, err := Get("advisory.json", key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGetUnknownKey(t *testing.T) {
	_, err := Get("advisory.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGetUnknownFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("advisory.json", "nonexistent")
	})
}

func TestFormatReplacesPlaceholders(t *testing.T) {
	template := "Project {{.ProjectName}} at level {{.ImpactLevel}}"

	result := Format(template, map[string]string{
		"ProjectName": "Benefit Triage",
		"ImpactLevel": "III",
	})

	assert.Equal(t, "Project Benefit Triage at level III", result)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	result := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", result)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get("advisory.json", "gap_analysis")
	require.NoError(t, err)

	// Second read comes from the cache and matches.
	second, err := Get("advisory.json", "gap_analysis")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

package validation

import (
	"strings"

	"github.com/openimpact/aia-engine/internal/types"
)

// Validate checks whether a project name and description cover enough of
// the required topic areas, in enough words, to support a meaningful
// assessment. It is a pure function of its inputs: it never mutates state
// and never scores. Callers must consult it before any scoring attempt and
// short-circuit on a negative verdict.
func Validate(projectName, projectDescription string) *types.ValidationResult {
	combined := strings.ToLower(projectName + " " + projectDescription)

	result := &types.ValidationResult{
		AreasRequired: RequiredAreas,
		AreasMissing:  []string{},
		TotalWords:    len(strings.Fields(projectName)) + len(strings.Fields(projectDescription)),
	}

	for _, area := range topicAreas {
		if coversArea(combined, area) {
			result.AreasCovered++
		} else {
			result.AreasMissing = append(result.AreasMissing, area.Name)
		}
	}

	result.IsValid = result.AreasCovered >= MinAreasCovered && result.TotalWords >= MinWordCount
	return result
}

func coversArea(text string, area TopicArea) bool {
	for _, keyword := range area.Keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openimpact/aia-engine/internal/types"
)

func TestChoiceScore(t *testing.T) {
	tests := []struct {
		name  string
		value string
		score int
		ok    bool
	}{
		{name: "standard item token", value: "item3-4", score: 4, ok: true},
		{name: "zero score", value: "item1-0", score: 0, ok: true},
		{name: "multi digit score", value: "item2-12", score: 12, ok: true},
		{name: "multiple dashes uses last", value: "item-a-3", score: 3, ok: true},
		{name: "no dash", value: "item3", ok: false},
		{name: "trailing dash", value: "item3-", ok: false},
		{name: "leading dash only", value: "-4", ok: false},
		{name: "non numeric suffix", value: "item3-x", ok: false},
		{name: "double dash uses last segment", value: "item3--4", score: 4, ok: true},
		{name: "empty value", value: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := ChoiceScore(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestFlattenScorableQuestionsDocumentOrder(t *testing.T) {
	s, err := LoadDefault()
	require.NoError(t, err)

	questions := FlattenScorableQuestions(s)
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	// Nested panel questions surface in reading order, and the comment
	// element does not appear at all.
	assert.Equal(t, []string{
		"businessDrivers",
		"decisionAutonomy",
		"rightsImpact",
		"affectedPopulations",
		"economicImpact",
		"reversibility",
		"dataSources",
		"oversightMechanism",
		"explainability",
	}, ids)
}

func TestFlattenSkipsUnscorableQuestions(t *testing.T) {
	s := &types.Survey{
		Pages: []types.Page{{
			Name: "p1",
			Elements: []types.Element{
				{Question: &types.Question{
					ID:      "scored",
					Kind:    types.QuestionSingleChoice,
					Choices: []types.Choice{{Value: "item1-2"}},
				}},
				{Question: &types.Question{
					ID:      "unscored",
					Kind:    types.QuestionSingleChoice,
					Choices: []types.Choice{{Value: "yes"}, {Value: "no"}},
				}},
			},
		}},
	}

	questions := FlattenScorableQuestions(s)
	require.Len(t, questions, 1)
	assert.Equal(t, "scored", questions[0].ID)
}

func TestMaxPossibleScoreDefaultSurvey(t *testing.T) {
	s, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, 30, MaxPossibleScore(s))
}

func TestFindQuestion(t *testing.T) {
	s, err := LoadDefault()
	require.NoError(t, err)

	// Nested two panels deep.
	q := FindQuestion(s, "economicImpact")
	require.NotNil(t, q)
	assert.Equal(t, types.QuestionSingleChoice, q.Kind)

	assert.Nil(t, FindQuestion(s, "doesNotExist"))
}

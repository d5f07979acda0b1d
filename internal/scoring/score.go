package scoring

import (
	"github.com/openimpact/aia-engine/internal/survey"
	"github.com/openimpact/aia-engine/internal/types"
)

// Methodology is the fixed citation attached to officially computed scores.
const Methodology = "Deterministic weighted-choice scoring against the Algorithmic Impact Assessment questionnaire, fixed threshold bands I-IV"

// Score computes the total impact score for the supplied answers against a
// loaded survey. It is pure and deterministic: identical inputs always
// produce an identical result.
//
// Questions with no supplied answer contribute 0. This mirrors the survey's
// scoring sheet, where skipping a question is scored as the lowest-risk
// option; callers that want stricter gating should compare the breakdown
// length against the flattened question count.
func Score(s *types.Survey, answers []types.Answer) (*types.ScoreResult, error) {
	awarded := make(map[string]int, len(answers))

	for _, answer := range answers {
		q := survey.FindQuestion(s, answer.QuestionID)
		if q == nil {
			return nil, &UnknownQuestionError{QuestionID: answer.QuestionID}
		}
		score, err := scoreAnswer(q, answer)
		if err != nil {
			return nil, err
		}
		awarded[q.ID] = score
	}

	// Breakdown follows document order so reports are reproducible.
	result := &types.ScoreResult{
		MaxPossibleScore: survey.MaxPossibleScore(s),
		Breakdown:        []types.QuestionScore{},
	}
	for _, q := range survey.FlattenScorableQuestions(s) {
		score, answered := awarded[q.ID]
		if !answered {
			continue
		}
		result.TotalScore += score
		result.Breakdown = append(result.Breakdown, types.QuestionScore{
			QuestionID: q.ID,
			Score:      score,
		})
	}

	result.ImpactLevel = ImpactLevelForScore(result.TotalScore)
	return result, nil
}

func scoreAnswer(q *types.Question, answer types.Answer) (int, error) {
	if len(answer.SelectedValues) == 0 {
		return 0, &InvalidSelectionError{QuestionID: q.ID, Message: "no values selected"}
	}
	if q.Kind == types.QuestionSingleChoice && len(answer.SelectedValues) > 1 {
		return 0, &InvalidSelectionError{
			QuestionID: q.ID,
			Message:    "multiple values selected for a single-choice question",
		}
	}

	total := 0
	seen := make(map[string]bool, len(answer.SelectedValues))
	for _, value := range answer.SelectedValues {
		if seen[value] {
			return 0, &InvalidSelectionError{QuestionID: q.ID, Value: value, Message: "selected more than once"}
		}
		seen[value] = true

		if !hasChoice(q, value) {
			return 0, &InvalidSelectionError{QuestionID: q.ID, Value: value, Message: "is not among the question's choices"}
		}
		if score, ok := survey.ChoiceScore(value); ok {
			total += score
		}
	}

	return total, nil
}

func hasChoice(q *types.Question, value string) bool {
	for _, c := range q.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

package survey

import (
	"strconv"
	"strings"

	"github.com/openimpact/aia-engine/internal/types"
)

// ChoiceScore extracts the numeric weight encoded in a choice value token.
// The convention is an item index followed by a dash-separated integer
// suffix ("item3-4" scores 4). Values not matching the pattern carry no
// score and report ok=false.
func ChoiceScore(value string) (score int, ok bool) {
	idx := strings.LastIndex(value, "-")
	if idx <= 0 || idx == len(value)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(value[idx+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// isScorable reports whether at least one choice of the question carries a
// score.
func isScorable(q *types.Question) bool {
	for _, c := range q.Choices {
		if _, ok := ChoiceScore(c.Value); ok {
			return true
		}
	}
	return false
}

// FlattenScorableQuestions descends pages and nested panels depth-first and
// returns the survey's scorable questions in document order. The traversal
// order is stable across runs regardless of panel nesting depth, which
// keeps report ordering reproducible.
func FlattenScorableQuestions(s *types.Survey) []types.Question {
	var questions []types.Question
	for _, page := range s.Pages {
		questions = appendScorable(questions, page.Elements)
	}
	return questions
}

func appendScorable(acc []types.Question, elements []types.Element) []types.Question {
	for _, el := range elements {
		switch {
		case el.Question != nil:
			if isScorable(el.Question) {
				acc = append(acc, *el.Question)
			}
		case el.Panel != nil:
			acc = appendScorable(acc, el.Panel.Elements)
		}
	}
	return acc
}

// MaxPossibleScore sums, over all scorable questions, the highest score any
// single choice of that question carries. Questions whose choices carry no
// scores contribute 0.
func MaxPossibleScore(s *types.Survey) int {
	total := 0
	for _, q := range FlattenScorableQuestions(s) {
		max := 0
		for _, c := range q.Choices {
			if score, ok := ChoiceScore(c.Value); ok && score > max {
				max = score
			}
		}
		total += max
	}
	return total
}

// FindQuestion resolves a question id against the flattened survey.
// Returns nil when the id does not exist.
func FindQuestion(s *types.Survey, id string) *types.Question {
	for _, page := range s.Pages {
		if q := findInElements(page.Elements, id); q != nil {
			return q
		}
	}
	return nil
}

func findInElements(elements []types.Element, id string) *types.Question {
	for i := range elements {
		el := elements[i]
		if el.Question != nil && el.Question.ID == id {
			return el.Question
		}
		if el.Panel != nil {
			if q := findInElements(el.Panel.Elements, id); q != nil {
				return q
			}
		}
	}
	return nil
}

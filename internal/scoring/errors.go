// Package scoring computes deterministic impact scores from survey answers.
package scoring

import "fmt"

// UnknownQuestionError indicates an answer referenced a question id that
// does not exist in the loaded survey. The whole scoring call is rejected;
// bad answers are never silently skipped.
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question: %s", e.QuestionID)
}

// InvalidSelectionError indicates a selected value is not among the
// question's choices, or the selection shape does not match the question
// kind (multiple values for a single-choice question).
type InvalidSelectionError struct {
	QuestionID string
	Value      string
	Message    string
}

func (e *InvalidSelectionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid selection for question %s: value %q %s", e.QuestionID, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid selection for question %s: %s", e.QuestionID, e.Message)
}

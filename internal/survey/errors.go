// Package survey loads hierarchical questionnaire definitions and exposes
// a flat, order-stable view of their scorable questions.
package survey

import "fmt"

// MalformedSurveyError indicates the survey definition cannot be indexed.
// This is fatal at load time; the caller must not proceed with a partially
// indexed survey.
type MalformedSurveyError struct {
	Message string
	Cause   error
}

func (e *MalformedSurveyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed survey: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed survey: %s", e.Message)
}

func (e *MalformedSurveyError) Unwrap() error {
	return e.Cause
}

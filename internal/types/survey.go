// Package types provides type definitions for structured data used throughout the aia-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QuestionKind identifies how a question accepts selections
type QuestionKind string

const (
	QuestionSingleChoice QuestionKind = "single_choice"
	QuestionMultiChoice  QuestionKind = "multi_choice"
)

// Choice represents one selectable option of a survey question.
// The score a choice carries is encoded in its Value token (trailing
// dash-separated integer suffix); values without that suffix carry no score.
type Choice struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Question represents a scorable survey question
type Question struct {
	ID      string       `json:"id"`
	Kind    QuestionKind `json:"kind"`
	Title   string       `json:"title,omitempty"`
	Choices []Choice     `json:"choices"`
}

// Panel is a named grouping of survey elements; panels may nest
type Panel struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Elements []Element `json:"elements"`
}

// Element is a tagged variant: exactly one of Question or Panel is set
type Element struct {
	Question *Question `json:"question,omitempty"`
	Panel    *Panel    `json:"panel,omitempty"`
}

// Page represents one page of a survey definition
type Page struct {
	Name     string    `json:"name"`
	Elements []Element `json:"elements"`
}

// Survey represents a loaded questionnaire definition.
// Page and element order is document order and defines the canonical
// question ordering for reports.
type Survey struct {
	Title string `json:"title,omitempty"`
	Pages []Page `json:"pages"`
}

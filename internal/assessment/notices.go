// Package assessment composes the validator, scoring engine, and advisory
// generator into single-call assessment operations.
package assessment

// ComplianceNotices are the static disclaimers attached to every
// advisory-augmented result. They are fixed text, never generated.
var ComplianceNotices = []string{
	"Officially computed values in official_data are produced solely by the deterministic scoring engine and description validator.",
	"Content in advisory_analysis is supplementary guidance and carries no official standing.",
	"A functional preview estimates impact from the project description; it is not a substitute for completing the full questionnaire.",
}

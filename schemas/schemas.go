// Package schemas holds the JSON Schema documents that describe the
// structured inputs of the assessment engine, embedded at compile time.
package schemas

import _ "embed"

// SurveySchema describes the hierarchical survey definition format
// (pages, elements, nested panels, choices).
//
//go:embed survey.schema.json
var SurveySchema string

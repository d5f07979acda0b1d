// Package export renders finished assessment results into persisted report
// documents. The core passes the assessment result through unmodified; the
// exporter only renders and reports success or failure.
package export

import (
	"fmt"

	"github.com/openimpact/aia-engine/internal/types"
)

// Report bundles everything an exporter needs to render a document.
// Either Outcome or Preview is set depending on the assessment type.
// Advisory and Notices accompany an Outcome when the workflow generated
// advisory content alongside the deterministic result; a Preview carries
// its own advisory block.
type Report struct {
	ProjectName        string
	ProjectDescription string
	Outcome            *types.AssessmentOutcome
	Preview            *types.PreviewOutcome
	Advisory           *types.AdvisoryAnalysis
	Notices            []string
}

// Exporter renders an assessment report to persistent storage
type Exporter interface {
	Export(report Report) types.ExportResult
}

// RenderError represents a failure to render or persist a report
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

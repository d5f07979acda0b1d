// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/openimpact/aia-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintValidationResult outputs a human-readable validation verdict
func (p *Printer) PrintValidationResult(v *types.ValidationResult) {
	if v == nil {
		return
	}

	var sb strings.Builder
	verdict := "PASS"
	if !v.IsValid {
		verdict = "FAIL"
	}
	sb.WriteString(fmt.Sprintf("Verdict:       %s\n", verdict))
	sb.WriteString(fmt.Sprintf("Areas covered: %d of %d\n", v.AreasCovered, v.AreasRequired))
	sb.WriteString(fmt.Sprintf("Word count:    %d\n", v.TotalWords))

	if len(v.AreasMissing) > 0 {
		sb.WriteString("Missing areas:\n")
		for _, area := range v.AreasMissing {
			sb.WriteString(fmt.Sprintf("  • %s\n", area))
		}
	}

	p.printBox("Description Validation", strings.TrimRight(sb.String(), "\n"))
}

// PrintScoreResult outputs a human-readable score summary
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total score:  %d / %d\n", result.TotalScore, result.MaxPossibleScore))
	sb.WriteString(fmt.Sprintf("Impact level: %s\n", result.ImpactLevel))

	if len(result.Breakdown) > 0 {
		sb.WriteString("Breakdown:\n")
		count := min(len(result.Breakdown), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := result.Breakdown[i]
			sb.WriteString(fmt.Sprintf("  • %-28s %d\n", entry.QuestionID, entry.Score))
		}
		if len(result.Breakdown) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Breakdown)-maxItemsToShow))
		}
	}

	p.printBox("Score Result", strings.TrimRight(sb.String(), "\n"))
}

// PrintWorkflowStatus outputs a human-readable workflow progress summary
func (p *Printer) PrintWorkflowStatus(status *types.WorkflowStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", status.SessionID))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", status.AssessmentType))
	sb.WriteString(fmt.Sprintf("State:    %s\n", status.State))
	sb.WriteString(fmt.Sprintf("Progress: %.0f%%\n", status.ProgressPercentage))

	for i, tool := range status.PlannedSteps {
		marker := " "
		if i < len(status.CompletedTools) {
			marker = "✓"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", marker, tool))
	}

	p.printBox("Workflow Status", strings.TrimRight(sb.String(), "\n"))
}

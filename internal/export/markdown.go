package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/openimpact/aia-engine/internal/scoring"
	"github.com/openimpact/aia-engine/internal/types"
)

// MarkdownExporter renders assessment reports as Markdown files under a
// fixed output directory.
type MarkdownExporter struct {
	outputDir string
	tmpl      *template.Template
}

// reportData is the flattened view handed to the report template
type reportData struct {
	ProjectName        string
	ProjectDescription string
	GeneratedAt        string
	ReportID           string
	Status             string

	TotalScore       int
	MaxPossibleScore int
	ImpactLevel      string
	LevelDescription string
	Breakdown        []types.QuestionScore

	Validation *types.ValidationResult
	Advisory   *types.AdvisoryAnalysis
	Notices    []string
}

const reportTemplate = `# Algorithmic Impact Assessment Report

**Project:** {{.ProjectName}}
**Report ID:** {{.ReportID}}
**Generated:** {{.GeneratedAt}}
**Status:** {{.Status}}

## Project Description

{{.ProjectDescription}}

{{if .Validation}}## Description Validation

- Areas covered: {{.Validation.AreasCovered}} of {{.Validation.AreasRequired}}
- Word count: {{.Validation.TotalWords}}
{{- if .Validation.AreasMissing}}
- Missing areas: {{join .Validation.AreasMissing ", "}}
{{- end}}

{{end}}## Official Result

- Total score: {{.TotalScore}} / {{.MaxPossibleScore}}
- Impact level: {{.ImpactLevel}}
- {{.LevelDescription}}
{{if .Breakdown}}
| Question | Score |
|----------|-------|
{{- range .Breakdown}}
| {{.QuestionID}} | {{.Score}} |
{{- end}}
{{end}}
{{if .Advisory}}## Advisory Analysis

*Source: {{.Advisory.Source}} (supplementary guidance, no official standing)*

{{if .Advisory.GapAnalysis}}### Gap Analysis

{{.Advisory.GapAnalysis}}

{{end}}{{if .Advisory.PlanningGuidance}}### Planning Guidance

{{.Advisory.PlanningGuidance}}

{{end}}{{if .Advisory.Recommendations}}### Recommendations
{{range .Advisory.Recommendations}}
- {{.}}
{{- end}}

{{end}}{{end}}{{if .Notices}}## Compliance Notices
{{range .Notices}}
> {{.}}
{{- end}}
{{end}}`

// NewMarkdownExporter creates an exporter writing into outputDir, creating
// the directory if needed.
func NewMarkdownExporter(outputDir string) (*MarkdownExporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &RenderError{Message: "failed to create output directory", Cause: err}
	}

	tmpl, err := template.New("report").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(reportTemplate)
	if err != nil {
		return nil, &RenderError{Message: "failed to parse report template", Cause: err}
	}

	return &MarkdownExporter{outputDir: outputDir, tmpl: tmpl}, nil
}

// Export renders the report and writes it to disk. Failures are surfaced
// in the result rather than returned, matching the workflow's record-only
// handling of exporter outcomes.
func (e *MarkdownExporter) Export(report Report) types.ExportResult {
	data, err := e.buildReportData(report)
	if err != nil {
		return types.ExportResult{Success: false, Error: err.Error()}
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return types.ExportResult{Success: false, Error: fmt.Sprintf("failed to render report: %v", err)}
	}

	filename := fmt.Sprintf("aia-report-%s.md", data.ReportID)
	path := filepath.Join(e.outputDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return types.ExportResult{Success: false, Error: fmt.Sprintf("failed to write report: %v", err)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return types.ExportResult{Success: false, Error: fmt.Sprintf("failed to stat report: %v", err)}
	}

	return types.ExportResult{Success: true, FilePath: path, FileSize: info.Size()}
}

func (e *MarkdownExporter) buildReportData(report Report) (*reportData, error) {
	data := &reportData{
		ProjectName:        report.ProjectName,
		ProjectDescription: report.ProjectDescription,
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
		ReportID:           uuid.New().String(),
	}

	switch {
	case report.Outcome != nil:
		data.Status = report.Outcome.Status
		data.Validation = report.Outcome.Validation
		data.Advisory = report.Advisory
		data.Notices = report.Notices
		if report.Outcome.Score != nil {
			data.TotalScore = report.Outcome.Score.TotalScore
			data.MaxPossibleScore = report.Outcome.Score.MaxPossibleScore
			data.ImpactLevel = string(report.Outcome.Score.ImpactLevel)
			data.LevelDescription = scoring.LevelDescription(report.Outcome.Score.ImpactLevel)
			data.Breakdown = report.Outcome.Score.Breakdown
		}

	case report.Preview != nil:
		data.Status = report.Preview.Status
		data.Validation = report.Preview.Validation
		data.Advisory = report.Preview.AdvisoryAnalysis
		data.Notices = report.Preview.ComplianceNotices
		if report.Preview.OfficialData != nil {
			data.TotalScore = report.Preview.OfficialData.EstimatedScore
			data.MaxPossibleScore = report.Preview.OfficialData.MaxPossibleScore
			data.ImpactLevel = string(report.Preview.OfficialData.ImpactLevel)
			data.LevelDescription = scoring.LevelDescription(report.Preview.OfficialData.ImpactLevel)
			data.Validation = report.Preview.OfficialData.Validation
		}

	default:
		return nil, &RenderError{Message: "report carries no assessment result"}
	}

	return data, nil
}

package workflow

import "sort"

// Tool names used in planned step sequences
const (
	ToolValidateDescription = "validate_description"
	ToolComputeScore        = "compute_score"
	ToolEstimateScore       = "estimate_score"
	ToolGenerateAdvisory    = "generate_advisory"
	ToolExportReport        = "export_report"
)

// Assessment types resolvable to planned sequences
const (
	TypeFullAssessment    = "full_assessment"
	TypeFunctionalPreview = "functional_preview"
	TypeQuickScan         = "quick_scan"
)

// StepDefinition defines metadata for a workflow tool step
type StepDefinition struct {
	Name string
	// Recoverable steps record their failure and let the session proceed;
	// a non-recoverable failure transitions the session to failed.
	Recoverable bool
}

// StepTable holds the definition of every known tool step. Advisory
// generation is supplementary, so its failure does not sink the session.
var StepTable = map[string]StepDefinition{
	ToolValidateDescription: {Name: ToolValidateDescription},
	ToolComputeScore:        {Name: ToolComputeScore},
	ToolEstimateScore:       {Name: ToolEstimateScore},
	ToolGenerateAdvisory:    {Name: ToolGenerateAdvisory, Recoverable: true},
	ToolExportReport:        {Name: ToolExportReport},
}

// plannedSequences fixes the ordered tool sequence for each assessment
// type. Order is part of the contract: validation always gates scoring.
var plannedSequences = map[string][]string{
	TypeFullAssessment:    {ToolValidateDescription, ToolComputeScore, ToolGenerateAdvisory, ToolExportReport},
	TypeFunctionalPreview: {ToolValidateDescription, ToolEstimateScore, ToolGenerateAdvisory, ToolExportReport},
	TypeQuickScan:         {ToolValidateDescription, ToolEstimateScore},
}

// PlannedSteps resolves an assessment type to a copy of its fixed tool
// sequence. Returns an UnknownAssessmentTypeError for unrecognized types.
func PlannedSteps(assessmentType string) ([]string, error) {
	seq, ok := plannedSequences[assessmentType]
	if !ok {
		return nil, &UnknownAssessmentTypeError{AssessmentType: assessmentType}
	}
	steps := make([]string, len(seq))
	copy(steps, seq)
	return steps, nil
}

// AssessmentTypes returns the recognized assessment types in sorted order.
func AssessmentTypes() []string {
	names := make([]string, 0, len(plannedSequences))
	for name := range plannedSequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

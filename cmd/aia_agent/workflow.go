package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/db"
	"github.com/openimpact/aia-engine/internal/export"
	"github.com/openimpact/aia-engine/internal/observability"
	"github.com/openimpact/aia-engine/internal/types"
	"github.com/openimpact/aia-engine/internal/workflow"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Run an assessment as a step-by-step workflow session",
	Long: `Creates a workflow session for the chosen assessment type and
executes its planned steps in order, printing each step result. Step
records are written to the audit log when DATABASE_URL is set.`,
	RunE: runWorkflow,
}

var (
	workflowType        string
	workflowName        string
	workflowDescription string
	workflowDescFile    string
	workflowAnswersPath string
	workflowOutputDir   string
)

func init() {
	workflowCmd.Flags().StringVarP(&workflowType, "type", "t", "full_assessment", fmt.Sprintf("Assessment type (%s)", strings.Join(workflow.AssessmentTypes(), ", ")))
	workflowCmd.Flags().StringVarP(&workflowName, "name", "n", "", "Project name")
	workflowCmd.Flags().StringVarP(&workflowDescription, "description", "d", "", "Project description text (mutually exclusive with --description-file)")
	workflowCmd.Flags().StringVar(&workflowDescFile, "description-file", "", "Path to a file containing the project description")
	workflowCmd.Flags().StringVarP(&workflowAnswersPath, "answers", "a", "", "Path to a JSON file of survey answers (required for full_assessment)")
	workflowCmd.Flags().StringVar(&workflowOutputDir, "output-dir", "reports", "Directory exported reports are written into")

	rootCmd.AddCommand(workflowCmd)
}

func runWorkflow(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if workflowName == "" {
		return fmt.Errorf("--name is required")
	}
	description, err := resolveDescription(workflowDescription, workflowDescFile)
	if err != nil {
		return err
	}

	var answers []types.Answer
	if workflowAnswersPath != "" {
		answers, err = loadAnswers(workflowAnswersPath)
		if err != nil {
			return err
		}
	}

	def, err := loadSurveyDefinition("")
	if err != nil {
		return err
	}

	advisor, err := advisory.NewGenerator(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return fmt.Errorf("failed to create advisory generator: %w", err)
	}
	defer func() { _ = advisor.Close() }()

	exporter, err := export.NewMarkdownExporter(workflowOutputDir)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	// Optional audit persistence.
	var auditor workflow.Auditor
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: database unavailable, continuing without audit log: %v\n", err)
		} else if err := database.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audit migration failed, continuing without audit log: %v\n", err)
			database.Close()
		} else {
			defer database.Close()
			auditor = database
		}
	}

	registry := workflow.NewRegistry(workflow.Deps{
		Survey:   def,
		Advisor:  advisor,
		Exporter: exporter,
		Auditor:  auditor,
	})

	session, err := registry.CreateWorkflow(workflowType, workflowName, description, answers)
	if err != nil {
		return err
	}
	fmt.Printf("Created workflow session %s (%s)\n", session.ID, workflowType)

	outcomes, err := registry.AutoExecute(ctx, session.ID, len(session.PlannedSteps))
	if err != nil {
		return err
	}

	for _, outcome := range outcomes {
		marker := "ok"
		if !outcome.Success {
			marker = "FAILED"
		}
		fmt.Printf("  [%s] %s\n", marker, outcome.Tool)
		if outcome.Error != "" {
			fmt.Printf("        %s\n", outcome.Error)
		}
	}

	status, err := registry.GetStatus(session.ID)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintWorkflowStatus(status)

	if status.State == types.SessionStateFailed {
		return fmt.Errorf("workflow ended in failed state")
	}
	return nil
}

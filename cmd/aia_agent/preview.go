package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/assessment"
	"github.com/openimpact/aia-engine/internal/observability"
	"github.com/openimpact/aia-engine/internal/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run a heuristic preview assessment without survey answers",
	Long: `Estimates an impact score from risk signals in the project
description and generates advisory guidance. The estimate is clearly
separated from official survey-based scoring and carries no compliance
weight.`,
	RunE: runPreview,
}

var (
	previewName        string
	previewDescription string
	previewDescFile    string
	previewAPIKey      string
)

func init() {
	previewCmd.Flags().StringVarP(&previewName, "name", "n", "", "Project name")
	previewCmd.Flags().StringVarP(&previewDescription, "description", "d", "", "Project description text (mutually exclusive with --description-file)")
	previewCmd.Flags().StringVar(&previewDescFile, "description-file", "", "Path to a file containing the project description")
	previewCmd.Flags().StringVar(&previewAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if previewName == "" {
		return fmt.Errorf("--name is required")
	}
	description, err := resolveDescription(previewDescription, previewDescFile)
	if err != nil {
		return err
	}

	apiKey := previewAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	advisor, err := advisory.NewGenerator(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create advisory generator: %w", err)
	}
	defer func() {
		if err := advisor.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close advisory generator: %v\n", err)
		}
	}()

	def, err := loadSurveyDefinition("")
	if err != nil {
		return err
	}

	orchestrator := assessment.New(def, advisor)
	preview, err := orchestrator.FunctionalPreview(ctx, previewName, description)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidationResult(preview.Validation)
	if preview.Status == types.StatusValidationFailed {
		return fmt.Errorf("description does not meet the validation thresholds")
	}

	official := preview.OfficialData
	fmt.Printf("Estimated score: %d of %d (%s)\n", official.EstimatedScore, official.MaxPossibleScore, official.ImpactLevel)
	if len(official.SignalsMatched) > 0 {
		fmt.Println("Risk signals matched:")
		for _, signal := range official.SignalsMatched {
			fmt.Printf("  - %s\n", signal)
		}
	}

	if analysis := preview.AdvisoryAnalysis; analysis != nil {
		fmt.Printf("\nGap analysis (%s):\n%s\n", analysis.Source, analysis.GapAnalysis)
		fmt.Printf("\nPlanning guidance:\n%s\n", analysis.PlanningGuidance)
		if len(analysis.Recommendations) > 0 {
			fmt.Println("\nRecommendations:")
			for _, rec := range analysis.Recommendations {
				fmt.Printf("  - %s\n", rec)
			}
		}
	}

	fmt.Println()
	for _, notice := range preview.ComplianceNotices {
		fmt.Printf("NOTE: %s\n", notice)
	}

	return nil
}

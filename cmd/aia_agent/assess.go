package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/assessment"
	"github.com/openimpact/aia-engine/internal/config"
	"github.com/openimpact/aia-engine/internal/export"
	"github.com/openimpact/aia-engine/internal/observability"
	"github.com/openimpact/aia-engine/internal/survey"
	"github.com/openimpact/aia-engine/internal/types"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a full deterministic assessment from an answers file",
	Long: `Validates the project description for topic coverage, scores the
survey answers against the weighted questionnaire, and prints the impact
level. Optionally exports a Markdown report.`,
	RunE: runAssess,
}

var (
	assessConfigPath  string
	assessName        string
	assessDescription string
	assessDescFile    string
	assessAnswersPath string
	assessSurveyPath  string
	assessExport      bool
	assessOutputDir   string
)

func init() {
	assessCmd.Flags().StringVar(&assessConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	assessCmd.Flags().StringVarP(&assessName, "name", "n", "", "Project name")
	assessCmd.Flags().StringVarP(&assessDescription, "description", "d", "", "Project description text (mutually exclusive with --description-file)")
	assessCmd.Flags().StringVar(&assessDescFile, "description-file", "", "Path to a file containing the project description")
	assessCmd.Flags().StringVarP(&assessAnswersPath, "answers", "a", "", "Path to a JSON file of survey answers")
	assessCmd.Flags().StringVar(&assessSurveyPath, "survey", "", "Path to a survey definition JSON (defaults to the embedded questionnaire)")
	assessCmd.Flags().BoolVar(&assessExport, "export", false, "Export a Markdown report after scoring")
	assessCmd.Flags().StringVar(&assessOutputDir, "output-dir", "reports", "Directory exported reports are written into")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(cmd, assessConfigPath, assessSurveyPath, assessOutputDir)
	if err != nil {
		return err
	}

	if assessName == "" {
		return fmt.Errorf("--name is required")
	}
	description, err := resolveDescription(assessDescription, assessDescFile)
	if err != nil {
		return err
	}
	if assessAnswersPath == "" {
		return fmt.Errorf("--answers is required")
	}

	answers, err := loadAnswers(assessAnswersPath)
	if err != nil {
		return err
	}

	def, err := loadSurveyDefinition(cfg.SurveyPath)
	if err != nil {
		return err
	}

	orchestrator := assessment.New(def, advisory.NewStaticGenerator())
	outcome, err := orchestrator.AssessFull(assessName, description, answers)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidationResult(outcome.Validation)
	if outcome.Status == types.StatusValidationFailed {
		return fmt.Errorf("description does not meet the validation thresholds")
	}
	printer.PrintScoreResult(outcome.Score)

	if assessExport {
		exporter, err := export.NewMarkdownExporter(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to create exporter: %w", err)
		}
		result := exporter.Export(export.Report{
			ProjectName:        assessName,
			ProjectDescription: description,
			Outcome:            outcome,
		})
		if !result.Success {
			return fmt.Errorf("report export failed: %s", result.Error)
		}
		fmt.Printf("Report written to %s\n", result.FilePath)
	}

	return nil
}

// mergedConfig loads the optional config file and applies flag values on
// top. An explicitly set flag always wins over the config file.
func mergedConfig(cmd *cobra.Command, path, surveyFlag, outputDirFlag string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("survey") || cfg.SurveyPath == "" {
		cfg.SurveyPath = surveyFlag
	}
	if cmd.Flags().Changed("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = outputDirFlag
	}

	return cfg, nil
}

// resolveDescription returns the inline description or the contents of
// the description file.
func resolveDescription(inline, file string) (string, error) {
	if inline != "" && file != "" {
		return "", fmt.Errorf("--description and --description-file are mutually exclusive")
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read description file: %w", err)
		}
		return string(data), nil
	}
	if inline == "" {
		return "", fmt.Errorf("--description or --description-file is required")
	}
	return inline, nil
}

// loadAnswers reads a JSON array of answers from disk.
func loadAnswers(path string) ([]types.Answer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	var answers []types.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers JSON: %w", err)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers file contains no answers")
	}
	return answers, nil
}

// loadSurveyDefinition reads a survey from disk, or falls back to the
// embedded default when no path is set.
func loadSurveyDefinition(path string) (*types.Survey, error) {
	if path == "" {
		return survey.LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}
	return survey.Load(data)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openimpact/aia-engine/internal/server"
)

var (
	servePort      int
	serveSurvey    string
	serveOutputDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP tool API server",
	Long:  `Start an HTTP server exposing the assessment tools: full scoring, heuristic previews, and step-by-step workflow sessions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSurvey, "survey", "", "Path to a survey definition JSON (defaults to the embedded questionnaire)")
	serveCmd.Flags().StringVar(&serveOutputDir, "output-dir", "reports", "Directory exported reports are written into")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := server.Config{
		Port:        servePort,
		SurveyPath:  serveSurvey,
		OutputDir:   serveOutputDir,
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// Package main provides the entry point for the algorithmic impact
// assessment agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aia_agent",
	Short: "Algorithmic Impact Assessment engine",
	Long:  "aia_agent scores automated decision systems against a weighted impact questionnaire, validates project descriptions for topic coverage, and sequences assessments through auditable workflow sessions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

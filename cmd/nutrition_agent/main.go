// Package main provides the nutrition_agent CLI: evaluate food selections,
// render charts and serve the scoring API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nutrition_agent",
	Short: "Nutritional health score calculator",
	Long:  "nutrition_agent aggregates the nutrients of a food selection, scores it against a reference profile and recommends adjustments.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

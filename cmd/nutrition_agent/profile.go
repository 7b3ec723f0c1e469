package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Export a reference profile as JSON",
	Long:  "Writes the built-in reference profile (or the validated --profile file) as JSON, ready to edit and pass back with --profile.",
	RunE:  runProfile,
}

var (
	profilePath   string
	profileOutput string
)

func init() {
	profileCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to a reference profile JSON to validate and re-export")
	profileCmd.Flags().StringVarP(&profileOutput, "out", "o", "", "Path to write the profile JSON (default stdout)")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	return exportProfile(profilePath, profileOutput, cmd.OutOrStdout())
}

// exportProfile writes the profile to outPath, or to stdout when outPath is empty.
func exportProfile(inPath, outPath string, stdout io.Writer) error {
	profile, err := loadProfile(inPath)
	if err != nil {
		return err
	}

	if outPath == "" {
		return reference.WriteProfile(stdout, profile)
	}

	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create profile file %s: %w", outPath, err)
	}
	defer func() { _ = f.Close() }()

	if err := reference.WriteProfile(f, profile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Wrote profile %s to %s\n", profile.Name, outPath)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/nutrition-scorer/internal/config"
	"github.com/jonathan/nutrition-scorer/internal/foods"
	"github.com/jonathan/nutrition-scorer/internal/observability"
	"github.com/jonathan/nutrition-scorer/internal/pipeline"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a food selection and write the reports",
	Long: `Aggregates the nutrients of the selected foods, computes the health score, recommends adjustments and writes the four CSV reports.

Amounts come from a Food/Amount (g) CSV (--selection) and/or repeated --amount "Food=grams" flags; flags override the file.
Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values, which override NUTRITION_* environment variables.`,
	RunE: runEvaluate,
}

var (
	evaluateConfigPath string
	evaluateFoods      string
	evaluateSelection  string
	evaluateAmounts    []string
	evaluateOutput     string
	evaluateProfile    string
	evaluateSummary    string
	evaluateVerbose    bool
)

func init() {
	// Config file flag (processed first)
	evaluateCmd.Flags().StringVarP(&evaluateConfigPath, "config", "c", "", "Path to config.json file (values can be overridden by other flags)")

	evaluateCmd.Flags().StringVarP(&evaluateFoods, "foods", "f", "", "Path to the food database CSV (default "+config.DefaultFoods+")")
	evaluateCmd.Flags().StringVarP(&evaluateSelection, "selection", "s", "", "Path to a Food/Amount (g) selection CSV")
	evaluateCmd.Flags().StringArrayVarP(&evaluateAmounts, "amount", "a", nil, `Food amount in grams as "Food=grams" (repeatable)`)
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Directory to write the reports to (default current directory)")
	evaluateCmd.Flags().StringVarP(&evaluateProfile, "profile", "p", "", "Path to a reference profile JSON (default built-in profile)")
	evaluateCmd.Flags().StringVar(&evaluateSummary, "summary", "", "Path to write the evaluation summary JSON")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "Print detailed summaries")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	// Step 1: Resolve config file, environment and defaults
	cfg, err := config.Resolve(evaluateConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("foods") {
		cfg.Foods = evaluateFoods
	}
	if cmd.Flags().Changed("selection") {
		cfg.Selection = evaluateSelection
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = evaluateOutput
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = evaluateProfile
	}
	if cmd.Flags().Changed("summary") {
		cfg.Summary = evaluateSummary
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = evaluateVerbose
	}

	eval, err := evaluate(cmd.Context(), cfg, evaluateAmounts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), eval.Message())
	return nil
}

// evaluate runs one evaluation from resolved configuration.
func evaluate(ctx context.Context, cfg config.Config, amounts []string, out io.Writer) (*pipeline.Evaluation, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Selection == "" && len(amounts) == 0 {
		return nil, fmt.Errorf("either --selection or --amount must be provided (via flag or config)")
	}

	selection, err := loadSelection(cfg.Selection, amounts)
	if err != nil {
		return nil, err
	}

	table, err := foods.Load(cfg.Foods)
	if err != nil {
		return nil, err
	}

	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		_, _ = fmt.Fprintf(out, "[VERBOSE] Loaded %d foods from %s, profile %s\n", table.Len(), cfg.Foods, profile.Name)
		observability.NewPrinter(out).PrintFoods(table)
	}

	eval, err := pipeline.Evaluate(ctx, pipeline.RunOptions{
		Foods:       table,
		Profile:     profile,
		Selection:   selection,
		OutputDir:   cfg.OutputDir,
		SummaryPath: cfg.Summary,
		Verbose:     cfg.Verbose,
		Out:         out,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	return eval, nil
}

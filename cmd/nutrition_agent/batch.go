package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/nutrition-scorer/internal/config"
	"github.com/jonathan/nutrition-scorer/internal/foods"
	"github.com/jonathan/nutrition-scorer/internal/pipeline"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [selection.csv...]",
	Short: "Evaluate several selection files concurrently",
	Long:  "Evaluates each Food/Amount (g) selection CSV independently and writes its reports into a subdirectory of --out named after the file.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchFoods       string
	batchOutput      string
	batchProfile     string
	batchConcurrency int
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchFoods, "foods", "f", config.DefaultFoods, "Path to the food database CSV")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Directory to write per-selection report directories to (required)")
	batchCmd.Flags().StringVarP(&batchProfile, "profile", "p", "", "Path to a reference profile JSON (default built-in profile)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", pipeline.DefaultConcurrency, "Number of evaluations to run at once")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed summaries")

	if err := batchCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Config{
		Foods:       batchFoods,
		OutputDir:   batchOutput,
		Profile:     batchProfile,
		Concurrency: batchConcurrency,
		Verbose:     batchVerbose,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return evaluateBatch(cmd.Context(), cfg, args, cmd.OutOrStdout())
}

// evaluateBatch evaluates every selection file and prints one score line per file.
func evaluateBatch(ctx context.Context, cfg config.Config, files []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := foods.Load(cfg.Foods)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	jobs, err := batchJobs(files, cfg.OutputDir)
	if err != nil {
		return err
	}

	results, err := pipeline.RunBatch(ctx, pipeline.BatchOptions{
		Foods:       table,
		Profile:     profile,
		Jobs:        jobs,
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
		Out:         out,
	})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nEvaluated %d selections:\n", len(results))
	for _, r := range results {
		_, _ = fmt.Fprintf(out, "  %-20s %s\n", r.Name, r.Evaluation.Message())
	}
	return nil
}

// batchJobs reads every selection file. Jobs are named after the file; repeated
// names get a numeric suffix so their output directories do not collide.
func batchJobs(files []string, outputDir string) ([]pipeline.BatchJob, error) {
	seen := make(map[string]int, len(files))
	jobs := make([]pipeline.BatchJob, 0, len(files))
	for _, file := range files {
		sel, err := reports.ReadFile(file, reports.ReadSelection)
		if err != nil {
			return nil, fmt.Errorf("failed to load selection %s: %w", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		jobs = append(jobs, pipeline.BatchJob{
			Name:      name,
			Selection: sel,
			OutputDir: filepath.Join(outputDir, name),
		})
	}
	return jobs, nil
}

// Package pipeline provides the high-level orchestration for evaluating a food
// selection: aggregate, score, recommend and write the reports.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/nutrition-scorer/internal/observability"
	"github.com/jonathan/nutrition-scorer/internal/pipeline/steps"
	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/jonathan/nutrition-scorer/internal/schemas"
	"github.com/jonathan/nutrition-scorer/internal/scoring"
	"github.com/jonathan/nutrition-scorer/internal/types"
	schemafiles "github.com/jonathan/nutrition-scorer/schemas"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for one evaluation
type RunOptions struct {
	Foods       *types.FoodTable   // Required
	Profile     *reference.Profile // Defaults to reference.Default()
	Selection   types.Selection
	OutputDir   string // Reports are skipped when empty
	SummaryPath string // Summary JSON is skipped when empty
	Verbose     bool
	Out         io.Writer // Progress output, defaults to os.Stdout
	LogPrefix   string    // Distinguishes concurrent runs in shared output
	OnProgress  ProgressCallback
}

// Evaluation is the outcome of one evaluation run.
type Evaluation struct {
	RunID     uuid.UUID
	Profile   string
	Selection types.Selection
	Intake    types.Intake
	Result    types.ScoreResult
	Plan      types.AdjustmentPlan
	Paths     *reports.Paths
}

// Summary is the JSON document describing an evaluation.
type Summary struct {
	RunID          string             `json:"run_id"`
	Profile        string             `json:"profile"`
	Selection      map[string]float64 `json:"selection"`
	Intake         types.Intake       `json:"intake"`
	Score          float64            `json:"score"`
	Interpretation string             `json:"interpretation"`
	Adjustments    []types.Adjustment `json:"adjustments"`
	Reports        *reports.Paths     `json:"reports,omitempty"`
}

// Summary builds the JSON summary of the evaluation. Only positive selection
// amounts are included.
func (e *Evaluation) Summary() Summary {
	selection := make(map[string]float64, len(e.Selection))
	for name, amount := range e.Selection {
		if amount > 0 {
			selection[name] = amount
		}
	}
	adjustments := e.Plan.Adjustments
	if adjustments == nil {
		adjustments = []types.Adjustment{}
	}
	intake := e.Intake
	if intake == nil {
		intake = types.Intake{}
	}
	return Summary{
		RunID:          e.RunID.String(),
		Profile:        e.Profile,
		Selection:      selection,
		Intake:         intake,
		Score:          e.Result.Score,
		Interpretation: e.Result.Label.Interpretation(),
		Adjustments:    adjustments,
		Reports:        e.Paths,
	}
}

// Message is the confirmation line shown after an evaluation.
func (e *Evaluation) Message() string {
	return fmt.Sprintf("Health Score: %s (%s)", e.Result.Formatted(), e.Result.Label.Interpretation())
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			RunID:    runID.String(),
			Content:  content,
		})
	}
}

// Evaluate runs one evaluation. The selection is snapshotted before any step
// runs, so later changes by the caller do not affect the result.
func Evaluate(ctx context.Context, opts RunOptions) (*Evaluation, error) {
	if opts.Foods == nil {
		return nil, fmt.Errorf("food table is required")
	}
	if opts.Profile == nil {
		opts.Profile = reference.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)

	calc, err := scoring.NewCalculator(opts.Profile)
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{
		RunID:     uuid.New(),
		Profile:   opts.Profile.Name,
		Selection: opts.Selection.Snapshot(),
	}
	tracker := steps.NewTracker()
	total := len(steps.Sequence)

	// begin checks for cancellation and dependencies, then prints the step line.
	begin := func(step string, n int, detail string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tracker.Start(step); err != nil {
			return fmt.Errorf("step %s: %w", step, err)
		}
		desc := steps.StepRegistry[step].Description
		//nolint:errcheck // progress output; errors are not recoverable
		fmt.Fprintf(out, "%sStep %d/%d: %s%s...\n", opts.LogPrefix, n, total, desc, detail)
		return nil
	}
	// fail marks step failed and lists the steps that can no longer run.
	fail := func(step string) {
		tracker.Fail(step)
		if blocked := tracker.GetBlockedSteps(); len(blocked) > 0 {
			//nolint:errcheck // progress output; errors are not recoverable
			fmt.Fprintf(out, "%sStep %s failed, not running: %s\n", opts.LogPrefix, step, strings.Join(blocked, ", "))
		}
	}

	// Step 1: Aggregate intake
	if err := begin(steps.Aggregate, 1, fmt.Sprintf(" (%d foods selected)", countSelected(eval.Selection))); err != nil {
		return nil, err
	}
	eval.Intake, err = scoring.Aggregate(opts.Foods, eval.Selection)
	if err != nil {
		fail(steps.Aggregate)
		return nil, fmt.Errorf("intake aggregation failed: %w", err)
	}
	tracker.Complete(steps.Aggregate)
	emitProgress(&opts, eval.RunID, steps.Aggregate, "Intake aggregated", eval.Intake)
	if opts.Verbose {
		printer.PrintIntake(eval.Intake, opts.Profile)
	}

	// Step 2: Score
	if err := begin(steps.Score, 2, ""); err != nil {
		return nil, err
	}
	eval.Result = calc.Evaluate(eval.Intake)
	tracker.Complete(steps.Score)
	emitProgress(&opts, eval.RunID, steps.Score, eval.Message(), eval.Result)
	if opts.Verbose {
		printer.PrintScore(eval.Result)
	}

	// Step 3: Recommend
	if err := begin(steps.Recommend, 3, ""); err != nil {
		return nil, err
	}
	eval.Plan = calc.Recommend(eval.Intake, eval.Result.Score)
	tracker.Complete(steps.Recommend)
	emitProgress(&opts, eval.RunID, steps.Recommend, fmt.Sprintf("%d adjustments suggested", eval.Plan.Len()), eval.Plan)
	if opts.Verbose {
		printer.PrintAdjustments(eval.Plan)
	}

	// Step 4: Reports
	if opts.OutputDir != "" {
		if err := begin(steps.WriteReports, 4, " to "+opts.OutputDir); err != nil {
			return nil, err
		}
		set := &reports.Set{
			Selection: eval.Selection,
			FoodOrder: opts.Foods.Names(),
			Intake:    eval.Intake,
			Profile:   opts.Profile,
			Result:    eval.Result,
			Plan:      eval.Plan,
		}
		paths, err := set.WriteDir(opts.OutputDir)
		if err != nil {
			fail(steps.WriteReports)
			return nil, fmt.Errorf("failed to write reports: %w", err)
		}
		eval.Paths = &paths
		tracker.Complete(steps.WriteReports)
		emitProgress(&opts, eval.RunID, steps.WriteReports, "Reports written", paths)
	} else {
		tracker.Skip(steps.WriteReports)
	}

	// Step 5: Summary
	if opts.SummaryPath != "" {
		if err := begin(steps.WriteSummary, 5, " to "+opts.SummaryPath); err != nil {
			return nil, err
		}
		if err := WriteSummary(opts.SummaryPath, eval); err != nil {
			fail(steps.WriteSummary)
			return nil, err
		}
		if err := schemas.ValidateJSONFile(schemafiles.Evaluation, opts.SummaryPath); err != nil {
			//nolint:errcheck // progress output; errors are not recoverable
			fmt.Fprintf(out, "%sWarning: summary does not match schema: %v\n", opts.LogPrefix, err)
		}
		tracker.Complete(steps.WriteSummary)
		emitProgress(&opts, eval.RunID, steps.WriteSummary, "Summary written", opts.SummaryPath)
	} else {
		tracker.Skip(steps.WriteSummary)
	}

	return eval, nil
}

// WriteSummary writes the evaluation summary as indented JSON.
func WriteSummary(path string, eval *Evaluation) error {
	data, err := json.MarshalIndent(eval.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create summary directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

func countSelected(sel types.Selection) int {
	n := 0
	for _, amount := range sel {
		if amount > 0 {
			n++
		}
	}
	return n
}

// syncWriter serializes writes from concurrent runs.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

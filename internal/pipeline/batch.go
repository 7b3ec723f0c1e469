package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// DefaultConcurrency is the number of evaluations a batch runs at once.
const DefaultConcurrency = 4

// BatchJob is one selection to evaluate as part of a batch.
type BatchJob struct {
	Name      string
	Selection types.Selection
	OutputDir string
}

// BatchOptions holds configuration for a batch of evaluations
type BatchOptions struct {
	Foods       *types.FoodTable
	Profile     *reference.Profile
	Jobs        []BatchJob
	Concurrency int
	Verbose     bool
	Out         io.Writer
	OnProgress  ProgressCallback
}

// BatchResult pairs a job with its evaluation.
type BatchResult struct {
	Name       string
	Evaluation *Evaluation
}

// RunBatch evaluates independent selections concurrently. The food table and
// profile are shared read-only; each evaluation is itself sequential. The
// first failure cancels jobs that have not started yet.
func RunBatch(ctx context.Context, opts BatchOptions) ([]BatchResult, error) {
	if opts.Profile == nil {
		opts.Profile = reference.Default()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	shared := &syncWriter{w: out}

	results := make([]BatchResult, len(opts.Jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range opts.Jobs {
		i, job := i, job
		g.Go(func() error {
			eval, err := Evaluate(gCtx, RunOptions{
				Foods:      opts.Foods,
				Profile:    opts.Profile,
				Selection:  job.Selection,
				OutputDir:  job.OutputDir,
				Verbose:    opts.Verbose,
				Out:        shared,
				LogPrefix:  fmt.Sprintf("[%s] ", job.Name),
				OnProgress: opts.OnProgress,
			})
			if err != nil {
				return fmt.Errorf("evaluation %s failed: %w", job.Name, err)
			}
			results[i] = BatchResult{Name: job.Name, Evaluation: eval}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Package steps provides step definitions, dependency validation, and step
// tracking for the evaluation pipeline.
package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Step categories
const (
	CategoryScoring = "scoring"
	CategoryOutput  = "output"
)

// Step names
const (
	Aggregate    = "aggregate"
	Score        = "score"
	Recommend    = "recommend"
	WriteReports = "write_reports"
	WriteSummary = "write_summary"
)

// Step statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
	StatusFailed     = "failed"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Description  string
	Dependencies []string
}

// Sequence is the order in which an evaluation runs its steps.
var Sequence = []string{Aggregate, Score, Recommend, WriteReports, WriteSummary}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	Aggregate: {
		Name:         Aggregate,
		Category:     CategoryScoring,
		Description:  "Aggregating nutrient intake",
		Dependencies: []string{},
	},
	Score: {
		Name:         Score,
		Category:     CategoryScoring,
		Description:  "Calculating health score",
		Dependencies: []string{Aggregate},
	},
	Recommend: {
		Name:         Recommend,
		Category:     CategoryScoring,
		Description:  "Recommending adjustments",
		Dependencies: []string{Score},
	},
	WriteReports: {
		Name:         WriteReports,
		Category:     CategoryOutput,
		Description:  "Writing reports",
		Dependencies: []string{Recommend},
	},
	WriteSummary: {
		Name:         WriteSummary,
		Category:     CategoryOutput,
		Description:  "Writing evaluation summary",
		Dependencies: []string{Recommend},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// Tracker records step statuses for one evaluation run.
type Tracker struct {
	mu     sync.Mutex
	status map[string]string
}

// NewTracker returns a tracker with every registered step pending.
func NewTracker() *Tracker {
	t := &Tracker{status: make(map[string]string, len(StepRegistry))}
	for name := range StepRegistry {
		t.status[name] = StatusPending
	}
	return t
}

// Status returns the status of a step.
func (t *Tracker) Status(step string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status[step]
}

// Start validates a step's dependencies and marks it in progress.
func (t *Tracker) Start(step string) error {
	if err := ValidateDependencies(t, step); err != nil {
		return err
	}
	t.set(step, StatusInProgress)
	return nil
}

// Complete marks a step completed.
func (t *Tracker) Complete(step string) { t.set(step, StatusCompleted) }

// Skip marks a step skipped. Skipped steps do not satisfy dependencies.
func (t *Tracker) Skip(step string) { t.set(step, StatusSkipped) }

// Fail marks a step failed.
func (t *Tracker) Fail(step string) { t.set(step, StatusFailed) }

func (t *Tracker) set(step, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status[step] = status
}

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(t *Tracker, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if t == nil || t.Status(dep) != StatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// GetBlockedSteps returns pending steps whose dependencies are not met, sorted by name
func (t *Tracker) GetBlockedSteps() []string {
	var blocked []string
	for stepName := range StepRegistry {
		if t.Status(stepName) != StatusPending {
			continue
		}
		if err := ValidateDependencies(t, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}

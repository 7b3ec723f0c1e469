package reports

import (
	"io"
	"path/filepath"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Set is the full group of reports produced by one evaluation.
type Set struct {
	Selection types.Selection
	FoodOrder []string
	Intake    types.Intake
	Profile   *reference.Profile
	Result    types.ScoreResult
	Plan      types.AdjustmentPlan
}

// Paths lists the files a Set writes into a directory.
type Paths struct {
	Intake      string `json:"intake"`
	Score       string `json:"score"`
	Adjustments string `json:"adjustments"`
	Selection   string `json:"selection"`
}

// PathsIn returns the default report paths inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Intake:      filepath.Join(dir, IntakeFile),
		Score:       filepath.Join(dir, ScoreFile),
		Adjustments: filepath.Join(dir, AdjustmentsFile),
		Selection:   filepath.Join(dir, SelectionFile),
	}
}

// WriteDir writes every report of the set into dir and returns their paths.
// Reports are written in a fixed order: intake, selection, score, adjustments.
func (s *Set) WriteDir(dir string) (Paths, error) {
	paths := PathsIn(dir)

	steps := []struct {
		path  string
		write func(io.Writer) error
	}{
		{paths.Intake, func(w io.Writer) error { return WriteIntake(w, s.Intake, s.Profile) }},
		{paths.Selection, func(w io.Writer) error { return WriteSelection(w, s.Selection, s.FoodOrder) }},
		{paths.Score, func(w io.Writer) error { return WriteScore(w, s.Result) }},
		{paths.Adjustments, func(w io.Writer) error { return WriteAdjustments(w, s.Plan) }},
	}
	for _, step := range steps {
		if err := WriteFile(step.path, step.write); err != nil {
			return Paths{}, err
		}
	}
	return paths, nil
}

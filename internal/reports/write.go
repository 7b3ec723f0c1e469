// Package reports writes the evaluation reports as CSV files and reads back
// the formats other tools consume (selections, intake, adjustments).
package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Default report file names.
const (
	IntakeFile      = "nutrient_intake_results.csv"
	ScoreFile       = "health_score_results.csv"
	AdjustmentsFile = "ideal_adjustments.csv"
	SelectionFile   = "food_amounts.csv"
)

// Column headers.
var (
	IntakeHeader      = []string{"Nutrient", "Intake", "Min RDI", "Max RDI"}
	ScoreHeader       = []string{"Health Score", "Interpretation"}
	AdjustmentsHeader = []string{"Nutrient", "Adjustment"}
	SelectionHeader   = []string{"Food", "Amount (g)"}
)

// WriteIntake writes one row per nutrient in intake with its band from profile.
func WriteIntake(w io.Writer, intake types.Intake, profile *reference.Profile) error {
	rows := make([][]string, 0, len(intake))
	for _, n := range intake.Nutrients() {
		band := profile.Band(n)
		rows = append(rows, []string{
			n.String(),
			formatFloat(intake[n]),
			formatFloat(band.Min),
			formatFloat(band.Max),
		})
	}
	return writeCSV(w, IntakeHeader, rows)
}

// WriteScore writes the score with two decimals and its interpretation.
func WriteScore(w io.Writer, result types.ScoreResult) error {
	return writeCSV(w, ScoreHeader, [][]string{
		{result.Formatted(), result.Label.Interpretation()},
	})
}

// WriteAdjustments writes one directive row per adjustment.
func WriteAdjustments(w io.Writer, plan types.AdjustmentPlan) error {
	rows := make([][]string, 0, plan.Len())
	for _, a := range plan.Adjustments {
		rows = append(rows, []string{a.Nutrient.String(), a.Directive()})
	}
	return writeCSV(w, AdjustmentsHeader, rows)
}

// WriteSelection writes the foods with a positive amount. order fixes the row
// order (see types.Selection.Ordered).
func WriteSelection(w io.Writer, selection types.Selection, order []string) error {
	rows := make([][]string, 0, len(selection))
	for _, name := range selection.Ordered(order) {
		amount := selection[name]
		if amount <= 0 {
			continue
		}
		rows = append(rows, []string{name, formatFloat(amount)})
	}
	return writeCSV(w, SelectionHeader, rows)
}

// WriteFile creates path (and its directory) and writes a report into it.
func WriteFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ReportError{Path: path, Message: "failed to create output directory", Cause: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ReportError{Path: path, Message: "failed to create report", Cause: err}
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return &ReportError{Path: path, Message: "failed to write report", Cause: err}
	}
	if err := f.Close(); err != nil {
		return &ReportError{Path: path, Message: "failed to close report", Cause: err}
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

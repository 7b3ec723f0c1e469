package reports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/nutrition-scorer/internal/foods"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// IntakeRow is one row of the intake report.
type IntakeRow struct {
	Nutrient string
	Intake   float64
	Min      float64
	Max      float64
}

// AdjustmentRow is one row of the adjustment report with its directive parsed.
type AdjustmentRow struct {
	Nutrient  string
	Directive string
	Direction types.Direction
	Amount    float64
}

// ReadSelection reads a Food/Amount (g) table into a selection. Amounts are
// parsed tolerantly; unparsable amounts become 0.
func ReadSelection(r io.Reader) (types.Selection, error) {
	rows, err := readTable(r, SelectionHeader)
	if err != nil {
		return nil, err
	}
	sel := types.Selection{}
	for _, row := range rows {
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		sel[name] = foods.ParseNumber(row[1])
	}
	return sel, nil
}

// ReadIntake reads an intake report.
func ReadIntake(r io.Reader) ([]IntakeRow, error) {
	rows, err := readTable(r, IntakeHeader)
	if err != nil {
		return nil, err
	}
	out := make([]IntakeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, IntakeRow{
			Nutrient: strings.TrimSpace(row[0]),
			Intake:   foods.ParseNumber(row[1]),
			Min:      foods.ParseNumber(row[2]),
			Max:      foods.ParseNumber(row[3]),
		})
	}
	return out, nil
}

// ReadAdjustments reads an adjustment report and parses each directive.
func ReadAdjustments(r io.Reader) ([]AdjustmentRow, error) {
	rows, err := readTable(r, AdjustmentsHeader)
	if err != nil {
		return nil, err
	}
	out := make([]AdjustmentRow, 0, len(rows))
	for i, row := range rows {
		dir, amount, err := ParseDirective(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, AdjustmentRow{
			Nutrient:  strings.TrimSpace(row[0]),
			Directive: row[1],
			Direction: dir,
			Amount:    amount,
		})
	}
	return out, nil
}

// ParseDirective extracts direction and amount from a directive such as
// "Increase by 6.94 units to reach optimal".
func ParseDirective(directive string) (types.Direction, float64, error) {
	fields := strings.Fields(directive)
	if len(fields) < 3 || fields[1] != "by" {
		return "", 0, fmt.Errorf("malformed adjustment directive %q", directive)
	}
	var dir types.Direction
	switch types.Direction(fields[0]) {
	case types.Increase:
		dir = types.Increase
	case types.Decrease:
		dir = types.Decrease
	default:
		return "", 0, fmt.Errorf("unknown adjustment direction %q", fields[0])
	}
	amount, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid adjustment amount %q: %w", fields[2], err)
	}
	return dir, amount, nil
}

// ReadFile opens path and decodes it with read.
func ReadFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, &ReportError{Path: path, Message: "failed to open report", Cause: err}
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, &ReportError{Path: path, Message: "failed to read report", Cause: err}
	}
	return v, nil
}

// readTable reads a CSV table, checks its header and returns rows padded to
// the header width.
func readTable(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	got, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header %v", header)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(got) < len(header) {
		return nil, fmt.Errorf("unexpected header %v, want %v", got, header)
	}
	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff")), name) {
			return nil, fmt.Errorf("unexpected header %v, want %v", got, header)
		}
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// Package foods loads the food database: per-serving nutrient values for named
// foods, read from a CSV file.
package foods

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Column names with a fixed meaning in the food CSV.
const (
	FoodColumn        = "Food"
	ServingSizeColumn = "Serving Size (g)"
)

// StandardColumns are the nutrient columns every food carries. A food whose
// row lacks one of these gets 0 for it; other nutrient columns are read only
// when present in the header.
var StandardColumns = []types.Nutrient{
	types.Calories,
	types.TotalFat,
	types.SaturatedFat,
	types.TransFat,
	types.Cholesterol,
	types.Sodium,
	types.TotalCarbohydrate,
	types.DietaryFiber,
	types.TotalSugars,
	types.AddedSugars,
	types.Protein,
	types.VitaminD3,
	types.Calcium,
	types.Iron,
	types.Potassium,
	types.Zinc,
	types.VitaminB12,
	types.VitaminC,
	types.VitaminB6,
	types.Magnesium,
}

// Load reads the food database at path. A missing file is reported as a
// *LoadError wrapping fs.ErrNotExist.
func Load(path string) (*types.FoodTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to open food data file %s", path),
			Cause:   err,
		}
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a food database from r. Numeric cells are parsed tolerantly:
// thousands separators are stripped and unparsable or empty values become 0.
func Parse(r io.Reader) (*types.FoodTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Message: "food data is empty"}
		}
		return nil, &LoadError{Message: "failed to read header", Cause: err}
	}

	cols := indexColumns(header)
	if cols.food < 0 {
		return nil, &LoadError{Message: fmt.Sprintf("missing %q column", FoodColumn)}
	}

	var foods []types.Food
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("failed to read record on line %d", line),
				Cause:   err,
			}
		}

		name := strings.TrimSpace(cell(record, cols.food))
		if name == "" {
			continue
		}

		food := types.Food{
			Name:        name,
			ServingSize: ParseNumber(cell(record, cols.serving)),
			Nutrients:   make(map[types.Nutrient]float64, len(cols.nutrients)),
		}
		for _, n := range StandardColumns {
			food.Nutrients[n] = 0
		}
		for n, idx := range cols.nutrients {
			food.Nutrients[n] = ParseNumber(cell(record, idx))
		}
		foods = append(foods, food)
	}

	return types.NewFoodTable(foods), nil
}

// ParseNumber parses a numeric cell, tolerating thousands separators and
// surrounding whitespace. Anything unparsable or non-finite yields 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

type columnIndex struct {
	food      int
	serving   int
	nutrients map[types.Nutrient]int
}

func indexColumns(header []string) columnIndex {
	idx := columnIndex{food: -1, serving: -1, nutrients: map[types.Nutrient]int{}}
	for i, raw := range header {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		switch {
		case strings.EqualFold(name, FoodColumn):
			idx.food = i
		case strings.EqualFold(name, ServingSizeColumn):
			idx.serving = i
		default:
			if n, err := types.ParseNutrient(name); err == nil {
				idx.nutrients[n] = i
			}
		}
	}
	return idx
}

// cell returns record[i], or "" when the column is absent or the row is short.
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// Package scoring implements the health score pipeline: intake aggregation,
// per-nutrient normalization against RDI bands, the weighted health score and
// the adjustment recommendations derived from it.
package scoring

import (
	"math"

	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Aggregate sums the nutrients supplied by the selected foods. Each food's
// per-serving values are scaled by amount/servingSize. Amounts <= 0 and foods
// missing from the table contribute nothing. A selected food whose serving
// size is not a positive finite number fails the whole aggregation with a
// *DataError.
func Aggregate(foods *types.FoodTable, selection types.Selection) (types.Intake, error) {
	intake := types.Intake{}
	for _, name := range selection.Ordered(foods.Names()) {
		amount := selection[name]
		if amount <= 0 {
			continue
		}
		food, ok := foods.Get(name)
		if !ok {
			continue
		}
		if !(food.ServingSize > 0) || math.IsInf(food.ServingSize, 0) {
			return nil, &DataError{Food: name, Message: "serving size is zero or missing"}
		}

		factor := amount / food.ServingSize
		for n, value := range food.Nutrients {
			intake[n] += value * factor
		}
	}
	return intake, nil
}

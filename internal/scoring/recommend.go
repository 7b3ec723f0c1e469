package scoring

import (
	"math"

	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Recommend proposes per-nutrient adjustments that close the gap between score
// and a perfect score. Each positively weighted nutrient below its band maximum
// gets an increase, each negatively weighted nutrient above its band minimum a
// decrease, scaled by the nutrient's share of its weight group and the score
// deficit. Amounts are rounded to two decimals.
func (c *Calculator) Recommend(intake types.Intake, score float64) types.AdjustmentPlan {
	plan := types.AdjustmentPlan{Adjustments: []types.Adjustment{}}

	deficit := targetScore - score
	if deficit <= 0 {
		return plan
	}

	for _, n := range c.weighted {
		w, _ := c.profile.Weight(n)
		band := c.profile.Band(n)
		current := intake[n]

		var adj types.Adjustment
		switch {
		case w > 0 && c.totalPositiveWeight > 0 && current < band.Max:
			proportion := w / c.totalPositiveWeight
			adj = types.Adjustment{
				Nutrient:  n,
				Direction: types.Increase,
				Amount:    proportion * deficit * (band.Max - current) / 100,
			}
		case w < 0 && c.totalNegativeWeight > 0 && current > band.Min:
			proportion := -w / c.totalNegativeWeight
			adj = types.Adjustment{
				Nutrient:  n,
				Direction: types.Decrease,
				Amount:    proportion * deficit * (current - band.Min) / 100,
			}
		default:
			continue
		}

		adj.Amount = roundCents(adj.Amount)
		plan.Adjustments = append(plan.Adjustments, adj)
	}
	return plan
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

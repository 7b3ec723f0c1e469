// Package charts renders the intake and adjustment reports as terminal bar
// charts: one small panel per nutrient showing intake against its RDI band and
// the adjustment target.
package charts

import (
	"sort"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Panel is the joined data for one nutrient.
type Panel struct {
	Nutrient   string
	Intake     float64
	Min        float64
	Max        float64
	HasIntake  bool
	Adjustment *reports.AdjustmentRow
}

// Target returns where intake would land after applying the adjustment.
func (p Panel) Target() (float64, bool) {
	if p.Adjustment == nil {
		return 0, false
	}
	if p.Adjustment.Direction == types.Increase {
		return p.Intake + p.Adjustment.Amount, true
	}
	return p.Intake - p.Adjustment.Amount, true
}

// Join outer-joins intake and adjustment rows by nutrient name, sorted by name.
// Nutrients that only have an adjustment get their band from profile when one
// is given, otherwise (0,0).
func Join(intake []reports.IntakeRow, adjustments []reports.AdjustmentRow, profile *reference.Profile) []Panel {
	byName := make(map[string]*Panel, len(intake)+len(adjustments))
	for _, row := range intake {
		byName[row.Nutrient] = &Panel{
			Nutrient:  row.Nutrient,
			Intake:    row.Intake,
			Min:       row.Min,
			Max:       row.Max,
			HasIntake: true,
		}
	}
	for i := range adjustments {
		adj := adjustments[i]
		p, ok := byName[adj.Nutrient]
		if !ok {
			p = &Panel{Nutrient: adj.Nutrient}
			if profile != nil {
				if n, err := types.ParseNutrient(adj.Nutrient); err == nil {
					band := profile.Band(n)
					p.Min, p.Max = band.Min, band.Max
				}
			}
			byName[adj.Nutrient] = p
		}
		p.Adjustment = &adj
	}

	panels := make([]Panel, 0, len(byName))
	for _, p := range byName {
		panels = append(panels, *p)
	}
	sort.Slice(panels, func(i, j int) bool {
		return panels[i].Nutrient < panels[j].Nutrient
	})
	return panels
}

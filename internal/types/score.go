//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Band is the recommended daily intake range for a nutrient.
type Band struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0,gtefield=Min"`
}

// Validate checks that 0 <= Min <= Max.
func (b Band) Validate() error {
	validate := validator.New()
	return validate.Struct(b)
}

// Label is the qualitative interpretation of a health score.
type Label string

const (
	LabelPoor         Label = "Poor"
	LabelBelowAverage Label = "Below Average"
	LabelGood         Label = "Good"
	LabelExcellent    Label = "Excellent"
	LabelOptimal      Label = "Optimal"
)

// Interpretation returns the sentence written to the health score report.
func (l Label) Interpretation() string {
	return fmt.Sprintf("%s Nutritional Health", l)
}

// ScoreResult is a health score in [0,100] with its label.
type ScoreResult struct {
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}

// Formatted returns the score with two decimals.
func (r ScoreResult) Formatted() string {
	return fmt.Sprintf("%.2f", r.Score)
}

// Direction tells whether a nutrient should be increased or decreased.
type Direction string

const (
	Increase Direction = "Increase"
	Decrease Direction = "Decrease"
)

// Adjustment is one suggested change to a nutrient's intake.
type Adjustment struct {
	Nutrient  Nutrient  `json:"nutrient"`
	Direction Direction `json:"direction"`
	Amount    float64   `json:"amount"`
}

// Directive renders the adjustment the way the adjustment report stores it.
func (a Adjustment) Directive() string {
	return fmt.Sprintf("%s by %.2f units to reach optimal", a.Direction, a.Amount)
}

// AdjustmentPlan is the set of suggested adjustments in canonical nutrient order.
type AdjustmentPlan struct {
	Adjustments []Adjustment `json:"adjustments"`
}

// Len returns the number of adjustments in the plan.
func (p AdjustmentPlan) Len() int {
	return len(p.Adjustments)
}

// Get returns the adjustment for a nutrient, if any.
func (p AdjustmentPlan) Get(n Nutrient) (Adjustment, bool) {
	for _, a := range p.Adjustments {
		if a.Nutrient == n {
			return a, true
		}
	}
	return Adjustment{}, false
}

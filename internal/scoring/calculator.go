package scoring

import (
	"math"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// Score bands for the qualitative label.
const (
	poorBelow         = 40.0
	belowAverageBelow = 60.0
	goodBelow         = 75.0
	excellentBelow    = 90.0

	// neutralScore is where a zero weighted sum lands.
	neutralScore = 50.0
	targetScore  = 100.0
)

// Calculator scores intakes against one reference profile.
type Calculator struct {
	profile  *reference.Profile
	weighted []types.Nutrient

	totalWeight         float64
	totalPositiveWeight float64
	totalNegativeWeight float64
}

// NewCalculator builds a calculator for profile. The profile's weight table must
// be non-empty with a non-zero sum of magnitudes.
func NewCalculator(profile *reference.Profile) (*Calculator, error) {
	if profile == nil {
		return nil, &ConfigError{Message: "reference profile is nil"}
	}
	if err := profile.Validate(); err != nil {
		return nil, &ConfigError{Message: "invalid reference profile", Cause: err}
	}

	c := &Calculator{
		profile:  profile,
		weighted: profile.Weighted(),
	}
	for _, n := range c.weighted {
		w, _ := profile.Weight(n)
		c.totalWeight += math.Abs(w)
		switch {
		case w > 0:
			c.totalPositiveWeight += w
		case w < 0:
			c.totalNegativeWeight += -w
		}
	}
	if c.totalWeight == 0 {
		return nil, &ConfigError{Message: "total weight is zero"}
	}
	return c, nil
}

// Profile returns the reference profile the calculator scores against.
func (c *Calculator) Profile() *reference.Profile {
	return c.profile
}

// Percentage returns the adequacy percentage of one nutrient's intake.
func (c *Calculator) Percentage(n types.Nutrient, intake float64) float64 {
	band := c.profile.Band(n)
	return Normalize(intake, band.Min, band.Max)
}

// Score combines the weighted adequacy percentages of every weighted nutrient
// into a value in [0,100]. Weighted nutrients missing from intake count as 0;
// intake entries without a weight are ignored.
func (c *Calculator) Score(intake types.Intake) float64 {
	totalWeightedScore := 0.0
	for _, n := range c.weighted {
		w, _ := c.profile.Weight(n)
		totalWeightedScore += c.Percentage(n, intake[n]) * w
	}
	return clamp(totalWeightedScore/c.totalWeight+neutralScore, 0, targetScore)
}

// Evaluate scores intake and labels the result.
func (c *Calculator) Evaluate(intake types.Intake) types.ScoreResult {
	score := c.Score(intake)
	return types.ScoreResult{Score: score, Label: LabelFor(score)}
}

// LabelFor bands a score into its qualitative label.
func LabelFor(score float64) types.Label {
	switch {
	case score < poorBelow:
		return types.LabelPoor
	case score < belowAverageBelow:
		return types.LabelBelowAverage
	case score < goodBelow:
		return types.LabelGood
	case score < excellentBelow:
		return types.LabelExcellent
	default:
		return types.LabelOptimal
	}
}

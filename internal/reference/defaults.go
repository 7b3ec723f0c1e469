package reference

import "github.com/jonathan/nutrition-scorer/internal/types"

// DefaultProfileName names the built-in profile.
const DefaultProfileName = "adult-male-200lb"

// Default returns the built-in profile: daily intake bands for an adult male
// at 200 pounds and the category weights used by the health score.
func Default() *Profile {
	return &Profile{
		Name: DefaultProfileName,
		Bands: map[types.Nutrient]types.Band{
			types.Probiotics:        {Min: 10_000_000_000, Max: 15_000_000_000},
			types.VitaminD3:         {Min: 1000, Max: 2000},
			types.VitaminB12:        {Min: 2.4, Max: 2.4},
			types.Magnesium:         {Min: 400, Max: 400},
			types.Protein:           {Min: 56, Max: 100},
			types.Calcium:           {Min: 1000, Max: 1000},
			types.Iron:              {Min: 8, Max: 10},
			types.Potassium:         {Min: 4700, Max: 4700},
			types.Omega3:            {Min: 1.6, Max: 1.8},
			types.TotalFat:          {Min: 44, Max: 78},
			types.SaturatedFat:      {Min: 16, Max: 22},
			types.TransFat:          {Min: 0, Max: 0},
			types.Cholesterol:       {Min: 0, Max: 300},
			types.Sodium:            {Min: 1500, Max: 2300},
			types.TotalCarbohydrate: {Min: 130, Max: 390},
			types.DietaryFiber:      {Min: 25, Max: 30},
			types.TotalSugars:       {Min: 0, Max: 50},
			types.AddedSugars:       {Min: 0, Max: 25},
			types.Zinc:              {Min: 8, Max: 11},
			types.VitaminC:          {Min: 75, Max: 90},
			types.VitaminB6:         {Min: 100, Max: 100},
		},
		Weights: map[types.Nutrient]float64{
			types.Protein:           0.15,
			types.TotalFat:          0.10,
			types.TotalCarbohydrate: 0.10,
			types.DietaryFiber:      0.08,
			types.VitaminD3:         0.07,
			types.VitaminB12:        0.06,
			types.VitaminC:          0.05,
			types.VitaminB6:         0.05,
			types.Calcium:           0.07,
			types.Iron:              0.06,
			types.Magnesium:         0.08,
			types.Potassium:         0.07,
			types.Zinc:              0.05,
			types.Probiotics:        0.05,
			types.Omega3:            0.04,
			types.SaturatedFat:      -0.04,
			types.TransFat:          -0.05,
			types.Cholesterol:       -0.03,
			types.Sodium:            -0.03,
			types.AddedSugars:       -0.06,
		},
	}
}

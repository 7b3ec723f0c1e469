package scoring

import "math"

// Normalize maps an intake onto a 0-100 adequacy percentage for the band
// [min, max]:
//   - a true band (min < max) is linear from 0 at min to 100 at max, clamped;
//   - a ceiling-only band (min == 0, max > 0) is intake/max, capped at 100;
//   - anything else (e.g. 0/0) is 0.
//
// Meeting min exactly yields 0, not a pass.
func Normalize(intake, min, max float64) float64 {
	switch {
	case min < max:
		clamped := math.Max(math.Min(intake, max), min)
		return math.Min((clamped-min)/(max-min)*100, 100)
	case min == 0 && max > 0:
		return clamp(intake/max*100, 0, 100)
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

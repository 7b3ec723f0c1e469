package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_TrueBandEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(56, 56, 100))
	assert.Equal(t, 100.0, Normalize(100, 56, 100))
	assert.Equal(t, 100.0, Normalize(250, 56, 100))
	assert.Equal(t, 0.0, Normalize(10, 56, 100))
}

func TestNormalize_ProteinScenario(t *testing.T) {
	// (60-56)/(100-56)*100
	assert.InDelta(t, 9.0909, Normalize(60, 56, 100), 0.0001)
}

func TestNormalize_MonotonicAndBounded(t *testing.T) {
	bands := [][2]float64{{56, 100}, {0.5, 0.6}, {1500, 2300}, {1e10, 1.5e10}}
	for _, b := range bands {
		prev := -1.0
		for i := 0; i <= 200; i++ {
			intake := b[1] * 1.5 * float64(i) / 200
			got := Normalize(intake, b[0], b[1])
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
			assert.GreaterOrEqual(t, got, prev, "not monotonic at intake=%v band=%v", intake, b)
			prev = got
		}
	}
}

func TestNormalize_CeilingOnly(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(0, 0, 300))
	assert.Equal(t, 100.0, Normalize(300, 0, 300))
	assert.Equal(t, 50.0, Normalize(150, 0, 300))
	assert.Equal(t, 100.0, Normalize(900, 0, 300))
}

func TestNormalize_CeilingOnlyNegativeIntakeClamps(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(-10, 0, 300))
}

func TestNormalize_DegenerateBand(t *testing.T) {
	// Trans fat: (0,0) yields 0 for any intake.
	assert.Equal(t, 0.0, Normalize(5, 0, 0))
	assert.Equal(t, 0.0, Normalize(0, 0, 0))
	// Point band such as magnesium (400,400).
	assert.Equal(t, 0.0, Normalize(400, 400, 400))
	// Malformed band.
	assert.Equal(t, 0.0, Normalize(50, 100, 10))
}

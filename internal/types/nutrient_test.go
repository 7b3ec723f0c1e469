//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrient_String(t *testing.T) {
	assert.Equal(t, "Protein (g)", Protein.String())
	assert.Equal(t, "Calories", Calories.String())
	assert.Equal(t, "Vitamin C (%DV)", VitaminC.String())
	assert.Equal(t, "Probiotics (CFUs)", Probiotics.String())
	assert.Equal(t, "Omega-3 Fatty Acids (g)", Omega3.String())
}

func TestNutrient_Unit(t *testing.T) {
	assert.Equal(t, UnitMilligram, Sodium.Unit())
	assert.Equal(t, UnitMicrogram, VitaminB12.Unit())
	assert.Equal(t, UnitNone, Calories.Unit())
}

func TestParseNutrient_EveryKey(t *testing.T) {
	for _, n := range AllNutrients() {
		parsed, err := ParseNutrient(n.String())
		require.NoError(t, err, n.String())
		assert.Equal(t, n, parsed)
	}
}

func TestParseNutrient_CaseAndWhitespace(t *testing.T) {
	n, err := ParseNutrient("  total fat (G) ")
	require.NoError(t, err)
	assert.Equal(t, TotalFat, n)
}

func TestParseNutrient_Unknown(t *testing.T) {
	_, err := ParseNutrient("Protien (g)")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown nutrient")
}

func TestAllNutrients_CanonicalOrder(t *testing.T) {
	all := AllNutrients()
	require.Len(t, all, 22)
	assert.Equal(t, Calories, all[0])
	assert.Equal(t, Omega3, all[len(all)-1])
}

func TestNutrient_InvalidValue(t *testing.T) {
	bad := Nutrient(99)
	assert.False(t, bad.Valid())
	assert.Equal(t, "Nutrient(99)", bad.String())
	_, err := bad.MarshalText()
	assert.Error(t, err)
}

func TestNutrient_JSONMapKeys(t *testing.T) {
	in := map[Nutrient]float64{Protein: 60, Sodium: 1500}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Protein (g)":60`)
	assert.Contains(t, string(data), `"Sodium (mg)":1500`)

	var out map[Nutrient]float64
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestNutrient_JSONUnknownKey(t *testing.T) {
	var out map[Nutrient]float64
	err := json.Unmarshal([]byte(`{"Unobtainium (g)": 1}`), &out)
	assert.Error(t, err)
}

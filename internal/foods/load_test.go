package foods

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/nutrition-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Food,Serving Size (g),Calories,Total Fat (g),Sodium (mg),Protein (g),Potassium (mg),Notes
Chicken Breast,100,165,3,74,30,"1,200",lean
Brown Rice,195,216,1.8,10,5,n/a,
Mystery Bar,,250,9,"2,300",abc,,
`

func TestParse_ReadsFoodsInOrder(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Chicken Breast", "Brown Rice", "Mystery Bar"}, table.Names())

	chicken, ok := table.Get("Chicken Breast")
	require.True(t, ok)
	assert.Equal(t, 100.0, chicken.ServingSize)
	assert.Equal(t, 30.0, chicken.Nutrients[types.Protein])
	assert.Equal(t, 3.0, chicken.Nutrients[types.TotalFat])
	assert.Equal(t, 165.0, chicken.Nutrients[types.Calories])
}

func TestParse_ThousandsSeparators(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	chicken, _ := table.Get("Chicken Breast")
	assert.Equal(t, 1200.0, chicken.Nutrients[types.Potassium])

	bar, _ := table.Get("Mystery Bar")
	assert.Equal(t, 2300.0, bar.Nutrients[types.Sodium])
}

func TestParse_UnparsableAndMissingDefaultToZero(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	rice, _ := table.Get("Brown Rice")
	assert.Equal(t, 0.0, rice.Nutrients[types.Potassium])

	bar, _ := table.Get("Mystery Bar")
	assert.Equal(t, 0.0, bar.ServingSize)
	assert.Equal(t, 0.0, bar.Nutrients[types.Protein])
}

func TestParse_StandardColumnsAlwaysPresent(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	chicken, _ := table.Get("Chicken Breast")
	for _, n := range StandardColumns {
		_, ok := chicken.Nutrients[n]
		assert.True(t, ok, "missing standard nutrient %s", n)
	}
	_, hasProbiotics := chicken.Nutrients[types.Probiotics]
	assert.False(t, hasProbiotics, "optional nutrient without a column should be absent")
}

func TestParse_OptionalNutrientColumn(t *testing.T) {
	csv := "Food,Serving Size (g),Probiotics (CFUs)\nKefir,240,\"2,500,000,000\"\n"
	table, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	kefir, _ := table.Get("Kefir")
	assert.Equal(t, 2.5e9, kefir.Nutrients[types.Probiotics])
}

func TestParse_MissingFoodColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Name,Protein (g)\nEgg,6\n"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), `missing "Food" column`)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParse_SkipsBlankNames(t *testing.T) {
	table, err := Parse(strings.NewReader("Food,Serving Size (g)\n,100\nEgg,50\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Egg"}, table.Names())
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "foods2.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to open food data file")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{" 3.5 ", 3.5},
		{"1,234.5", 1234.5},
		{"", 0},
		{"n/a", 0},
		{"-2", -2},
		{"NaN", 0},
		{"nan", 0},
		{"Inf", 0},
		{"-Infinity", 0},
		{"1e400", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumber(tt.in), tt.in)
	}
}

func TestParse_NonFiniteCellsReadAsZero(t *testing.T) {
	table, err := Parse(strings.NewReader("Food,Serving Size (g),Protein (g)\nOdd,NaN,30\nWeird,100,nan\n"))
	require.NoError(t, err)

	odd, _ := table.Get("Odd")
	assert.Equal(t, 0.0, odd.ServingSize)

	weird, _ := table.Get("Weird")
	assert.Equal(t, 0.0, weird.Nutrients[types.Protein])
}

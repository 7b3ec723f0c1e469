package reports

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIntake(t *testing.T) {
	var buf bytes.Buffer
	intake := types.Intake{types.TotalFat: 6, types.Protein: 60, types.Calories: 330}

	require.NoError(t, WriteIntake(&buf, intake, reference.Default()))

	want := "Nutrient,Intake,Min RDI,Max RDI\n" +
		"Calories,330,0,0\n" +
		"Total Fat (g),6,44,78\n" +
		"Protein (g),60,56,100\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteScore(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScore(&buf, types.ScoreResult{Score: 57.128, Label: types.LabelBelowAverage}))

	assert.Equal(t, "Health Score,Interpretation\n57.13,Below Average Nutritional Health\n", buf.String())
}

func TestWriteAdjustments(t *testing.T) {
	var buf bytes.Buffer
	plan := types.AdjustmentPlan{Adjustments: []types.Adjustment{
		{Nutrient: types.Protein, Direction: types.Increase, Amount: 6.94},
		{Nutrient: types.Sodium, Direction: types.Decrease, Amount: 107.14},
	}}

	require.NoError(t, WriteAdjustments(&buf, plan))

	want := "Nutrient,Adjustment\n" +
		"Protein (g),Increase by 6.94 units to reach optimal\n" +
		"Sodium (mg),Decrease by 107.14 units to reach optimal\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAdjustments_EmptyPlanWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAdjustments(&buf, types.AdjustmentPlan{}))
	assert.Equal(t, "Nutrient,Adjustment\n", buf.String())
}

func TestWriteSelection_PositiveOnly(t *testing.T) {
	var buf bytes.Buffer
	sel := types.Selection{"Egg": 0, "Chicken Breast": 200, "Oats": 42.5, "Kale": -3}

	require.NoError(t, WriteSelection(&buf, sel, []string{"Oats", "Chicken Breast", "Egg", "Kale"}))

	assert.Equal(t, "Food,Amount (g)\nOats,42.5\nChicken Breast,200\n", buf.String())
}

func TestSet_WriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "run")
	set := &Set{
		Selection: types.Selection{"Chicken Breast": 200},
		FoodOrder: []string{"Chicken Breast"},
		Intake:    types.Intake{types.Protein: 60},
		Profile:   reference.Default(),
		Result:    types.ScoreResult{Score: 50, Label: types.LabelBelowAverage},
		Plan: types.AdjustmentPlan{Adjustments: []types.Adjustment{
			{Nutrient: types.Protein, Direction: types.Increase, Amount: 1.5},
		}},
	}

	paths, err := set.WriteDir(dir)
	require.NoError(t, err)

	for _, p := range []string{paths.Intake, paths.Score, paths.Adjustments, paths.Selection} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
	assert.Equal(t, filepath.Join(dir, ScoreFile), paths.Score)

	data, err := os.ReadFile(paths.Score)
	require.NoError(t, err)
	assert.Equal(t, "Health Score,Interpretation\n50.00,Below Average Nutritional Health\n", string(data))
}

func TestWriteFile_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteFile(filepath.Join(blocker, "sub", "report.csv"), func(w io.Writer) error { return nil })
	require.Error(t, err)

	var reportErr *ReportError
	assert.ErrorAs(t, err, &reportErr)
}

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/nutrition-scorer/internal/foods"
	"github.com/jonathan/nutrition-scorer/internal/pipeline/steps"
	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/jonathan/nutrition-scorer/internal/scoring"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

func testFoods() *types.FoodTable {
	return types.NewFoodTable([]types.Food{
		{Name: "Chicken Breast", ServingSize: 100, Nutrients: map[types.Nutrient]float64{
			types.Protein: 30, types.Sodium: 74, types.TotalFat: 3,
		}},
		{Name: "Egg", ServingSize: 50, Nutrients: map[types.Nutrient]float64{
			types.Protein: 6, types.Cholesterol: 186,
		}},
		{Name: "Broken Row", ServingSize: 0, Nutrients: map[types.Nutrient]float64{
			types.Protein: 1,
		}},
	})
}

func TestEvaluate_ScoresAndWritesReports(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()

	eval, err := Evaluate(context.Background(), RunOptions{
		Foods:     testFoods(),
		Selection: types.Selection{"Chicken Breast": 200, "Egg": 0},
		OutputDir: dir,
		Out:       &out,
	})
	require.NoError(t, err)

	assert.Equal(t, 60.0, eval.Intake[types.Protein])
	assert.Equal(t, reference.DefaultProfileName, eval.Profile)

	calc, err := scoring.NewCalculator(reference.Default())
	require.NoError(t, err)
	assert.Equal(t, calc.Evaluate(eval.Intake), eval.Result)
	assert.Equal(t, calc.Recommend(eval.Intake, eval.Result.Score), eval.Plan)

	require.NotNil(t, eval.Paths)
	assert.Equal(t, reports.PathsIn(dir), *eval.Paths)
	for _, path := range []string{eval.Paths.Intake, eval.Paths.Score, eval.Paths.Adjustments, eval.Paths.Selection} {
		assert.FileExists(t, path)
	}

	output := out.String()
	assert.Contains(t, output, "Step 1/5: Aggregating nutrient intake (1 foods selected)...")
	assert.Contains(t, output, "Step 4/5: Writing reports to "+dir)
	assert.NotContains(t, output, "Step 5/5")
}

func TestEvaluate_NoOutputDirSkipsReports(t *testing.T) {
	var out bytes.Buffer

	eval, err := Evaluate(context.Background(), RunOptions{
		Foods:     testFoods(),
		Selection: types.Selection{"Egg": 100},
		Out:       &out,
	})
	require.NoError(t, err)

	assert.Nil(t, eval.Paths)
	assert.Equal(t, 12.0, eval.Intake[types.Protein])
	assert.NotContains(t, out.String(), "Step 4/5")
}

func TestEvaluate_ZeroServingSizeFails(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()

	_, err := Evaluate(context.Background(), RunOptions{
		Foods:     testFoods(),
		Selection: types.Selection{"Broken Row": 50},
		OutputDir: dir,
		Out:       &out,
	})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Step aggregate failed, not running: recommend, score, write_reports, write_summary")

	var dataErr *scoring.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "Broken Row", dataErr.Food)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no reports should be written on failure")
}

func TestEvaluate_SnapshotsSelection(t *testing.T) {
	sel := types.Selection{"Egg": 100}

	eval, err := Evaluate(context.Background(), RunOptions{
		Foods:     testFoods(),
		Selection: sel,
		Out:       &bytes.Buffer{},
	})
	require.NoError(t, err)

	sel["Egg"] = 500
	assert.Equal(t, 100.0, eval.Selection["Egg"])
}

func TestEvaluate_ProgressEvents(t *testing.T) {
	var events []ProgressEvent

	eval, err := Evaluate(context.Background(), RunOptions{
		Foods:      testFoods(),
		Selection:  types.Selection{"Egg": 100},
		Out:        &bytes.Buffer{},
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, steps.Aggregate, events[0].Step)
	assert.Equal(t, steps.Score, events[1].Step)
	assert.Equal(t, steps.Recommend, events[2].Step)
	assert.Equal(t, steps.CategoryScoring, events[1].Category)
	assert.Equal(t, eval.Message(), events[1].Message)
	assert.Equal(t, eval.RunID.String(), events[0].RunID)
}

func TestEvaluate_Verbose(t *testing.T) {
	var out bytes.Buffer

	_, err := Evaluate(context.Background(), RunOptions{
		Foods:     testFoods(),
		Selection: types.Selection{"Chicken Breast": 100},
		Verbose:   true,
		Out:       &out,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "NUTRIENT INTAKE")
	assert.Contains(t, out.String(), "HEALTH SCORE")
	assert.Contains(t, out.String(), "IDEAL ADJUSTMENTS")
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, RunOptions{Foods: testFoods(), Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_RequiresFoods(t *testing.T) {
	_, err := Evaluate(context.Background(), RunOptions{Out: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestEvaluate_InvalidProfile(t *testing.T) {
	_, err := Evaluate(context.Background(), RunOptions{
		Foods:   testFoods(),
		Profile: &reference.Profile{Name: "empty"},
		Out:     &bytes.Buffer{},
	})

	var configErr *scoring.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestEvaluate_WritesValidSummary(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary", "evaluation.json")

	eval, err := Evaluate(context.Background(), RunOptions{
		Foods:       testFoods(),
		Selection:   types.Selection{"Chicken Breast": 150, "Egg": -20},
		OutputDir:   dir,
		SummaryPath: summaryPath,
		Out:         &out,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Step 5/5: Writing evaluation summary")
	assert.NotContains(t, out.String(), "Warning")

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, eval.RunID.String(), summary.RunID)
	assert.Equal(t, map[string]float64{"Chicken Breast": 150}, summary.Selection)
	assert.Equal(t, 45.0, summary.Intake[types.Protein])
	assert.Equal(t, eval.Result.Label.Interpretation(), summary.Interpretation)
	assert.Len(t, summary.Adjustments, eval.Plan.Len())
	require.NotNil(t, summary.Reports)
	assert.Equal(t, eval.Paths.Score, summary.Reports.Score)
}

func TestEvaluation_SummaryEmptyPlan(t *testing.T) {
	eval := &Evaluation{Result: types.ScoreResult{Score: 100, Label: types.LabelOptimal}}

	summary := eval.Summary()

	assert.NotNil(t, summary.Adjustments)
	assert.Empty(t, summary.Adjustments)
	assert.NotNil(t, summary.Intake)
	assert.Equal(t, "Optimal Nutritional Health", summary.Interpretation)
}

func TestEvaluation_Message(t *testing.T) {
	eval := &Evaluation{Result: types.ScoreResult{Score: 57.1288, Label: types.LabelBelowAverage}}
	assert.Equal(t, "Health Score: 57.13 (Below Average Nutritional Health)", eval.Message())
}

func TestEvaluate_NonFiniteCellsStayFinite(t *testing.T) {
	table, err := foods.Parse(strings.NewReader("Food,Serving Size (g),Protein (g)\nOdd,NaN,30\nWeird,100,nan\n"))
	require.NoError(t, err)

	eval, err := Evaluate(context.Background(), RunOptions{
		Foods:     table,
		Selection: types.Selection{"Weird": 100},
		Out:       &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(eval.Result.Score))
	assert.GreaterOrEqual(t, eval.Result.Score, 0.0)
	assert.LessOrEqual(t, eval.Result.Score, 100.0)
	for _, a := range eval.Plan.Adjustments {
		assert.False(t, math.IsNaN(a.Amount), a.Nutrient.String())
	}
	_, err = json.Marshal(eval.Summary())
	assert.NoError(t, err)

	_, err = Evaluate(context.Background(), RunOptions{
		Foods:     table,
		Selection: types.Selection{"Odd": 100},
		Out:       &bytes.Buffer{},
	})
	var dataErr *scoring.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "Odd", dataErr.Food)
}

package main

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/nutrition-scorer/internal/config"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/jonathan/nutrition-scorer/internal/scoring"
	"github.com/jonathan/nutrition-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_WritesReports(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfg := config.Config{
		Foods:     writeFile(t, dir, "foods.csv", testFoodsCSV),
		Selection: writeFile(t, dir, "sel.csv", "Food,Amount (g)\nChicken Breast,200\n"),
		OutputDir: outDir,
		Summary:   filepath.Join(outDir, "summary.json"),
	}

	var out bytes.Buffer
	eval, err := evaluate(context.Background(), cfg, []string{"Egg=100"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 72.0, eval.Intake[types.Protein])
	assert.Contains(t, out.String(), "Step 1/5")

	for _, name := range []string{reports.IntakeFile, reports.ScoreFile, reports.AdjustmentsFile, reports.SelectionFile, "summary.json"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	sel, err := reports.ReadFile(filepath.Join(outDir, reports.SelectionFile), reports.ReadSelection)
	require.NoError(t, err)
	assert.Equal(t, types.Selection{"Chicken Breast": 200, "Egg": 100}, sel)
}

func TestEvaluate_RequiresSelection(t *testing.T) {
	_, err := evaluate(context.Background(), config.Config{Foods: "foods.csv"}, nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--selection or --amount")
}

func TestEvaluate_MissingFoods(t *testing.T) {
	cfg := config.Config{Foods: filepath.Join(t.TempDir(), "foods2.csv")}

	_, err := evaluate(context.Background(), cfg, []string{"Egg=1"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open food data file")
}

func TestEvaluate_ZeroServingSize(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfg := config.Config{
		Foods:     writeFile(t, dir, "foods.csv", testFoodsCSV),
		OutputDir: outDir,
	}

	_, err := evaluate(context.Background(), cfg, []string{"Broken Row=10"}, &bytes.Buffer{})
	require.Error(t, err)

	var dataErr *scoring.DataError
	assert.ErrorAs(t, err, &dataErr)
	assert.NoFileExists(t, filepath.Join(outDir, reports.ScoreFile))
}

func TestEvaluate_Verbose(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Foods:   writeFile(t, dir, "foods.csv", testFoodsCSV),
		Verbose: true,
	}

	var out bytes.Buffer
	_, err := evaluate(context.Background(), cfg, []string{"Egg=50"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "[VERBOSE] Loaded 3 foods")
	assert.Contains(t, out.String(), "FOOD DATABASE")
	assert.Contains(t, out.String(), "HEALTH SCORE")
}

func TestEvaluateCommand_InvalidAmount(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "evaluate", "--amount", "Egg")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "expected Food=grams")
}

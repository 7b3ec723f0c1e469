package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testFoodsCSV = `Food,Serving Size (g),Calories,Protein (g),Sodium (mg)
Chicken Breast,100,165,30,74
Egg,50,72,6,71
Broken Row,,10,1,1
`

// getBinaryPath returns the path to the nutrition_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "nutrition_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/ ./cmd/nutrition_agent'", binaryPath)
	}

	return binaryPath
}

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0755)
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// loadProfile loads a reference profile from path, or the built-in profile when
// path is empty.
func loadProfile(path string) (*reference.Profile, error) {
	if path == "" {
		return reference.Default(), nil
	}
	profile, err := reference.LoadProfile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// parseAmounts parses repeated "Food=grams" flags. The last '=' separates the
// amount, so food names may contain '='.
func parseAmounts(values []string) (types.Selection, error) {
	sel := types.Selection{}
	for _, v := range values {
		idx := strings.LastIndex(v, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid amount %q: expected Food=grams", v)
		}
		name := strings.TrimSpace(v[:idx])
		amount, err := strconv.ParseFloat(strings.TrimSpace(v[idx+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", v, err)
		}
		if name == "" {
			return nil, fmt.Errorf("invalid amount %q: food name is empty", v)
		}
		sel[name] = amount
	}
	return sel, nil
}

// loadSelection reads the selection file (if any) and applies amounts on top.
func loadSelection(path string, amounts []string) (types.Selection, error) {
	sel := types.Selection{}
	if path != "" {
		fromFile, err := reports.ReadFile(path, reports.ReadSelection)
		if err != nil {
			return nil, fmt.Errorf("failed to load selection: %w", err)
		}
		sel = fromFile
	}

	overrides, err := parseAmounts(amounts)
	if err != nil {
		return nil, err
	}
	for name, amount := range overrides {
		sel[name] = amount
	}
	return sel, nil
}

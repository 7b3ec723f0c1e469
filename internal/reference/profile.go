// Package reference provides the nutrient reference data used for scoring:
// recommended daily intake bands and signed per-nutrient weights.
package reference

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jonathan/nutrition-scorer/internal/schemas"
	"github.com/jonathan/nutrition-scorer/internal/types"
	profileschema "github.com/jonathan/nutrition-scorer/schemas"
)

// Profile is a set of RDI bands and scoring weights. Positive weights reward
// higher intake, negative weights penalize it. A profile is treated as
// read-only once constructed; Default returns a fresh copy on every call.
type Profile struct {
	Name    string                        `json:"name"`
	Bands   map[types.Nutrient]types.Band `json:"bands"`
	Weights map[types.Nutrient]float64    `json:"weights"`
}

// Band returns the RDI band for n, or (0,0) when the profile has none.
func (p *Profile) Band(n types.Nutrient) types.Band {
	return p.Bands[n]
}

// Weight returns the scoring weight for n and whether n is weighted at all.
func (p *Profile) Weight(n types.Nutrient) (float64, bool) {
	w, ok := p.Weights[n]
	return w, ok
}

// Weighted returns the weighted nutrients in canonical order.
func (p *Profile) Weighted() []types.Nutrient {
	out := make([]types.Nutrient, 0, len(p.Weights))
	for _, n := range types.AllNutrients() {
		if _, ok := p.Weights[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// TotalWeight returns the sum of absolute weights.
func (p *Profile) TotalWeight() float64 {
	total := 0.0
	for _, w := range p.Weights {
		total += math.Abs(w)
	}
	return total
}

// Validate checks every band (0 <= min <= max) and that the weight table can
// be used as a score denominator.
func (p *Profile) Validate() error {
	for _, n := range types.AllNutrients() {
		band, ok := p.Bands[n]
		if !ok {
			continue
		}
		if err := band.Validate(); err != nil {
			return &ProfileError{
				Message: fmt.Sprintf("invalid band for %s (min=%g, max=%g)", n, band.Min, band.Max),
				Cause:   err,
			}
		}
	}
	if len(p.Weights) == 0 {
		return &ProfileError{Message: "weight table is empty"}
	}
	if p.TotalWeight() == 0 {
		return &ProfileError{Message: "weight table sums to zero"}
	}
	return nil
}

// LoadProfile reads a profile from a JSON file, checks it against the
// reference profile schema and validates it.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ProfileError{
			Message: fmt.Sprintf("failed to read profile file %s", path),
			Cause:   err,
		}
	}
	return ParseProfile(data)
}

// ParseProfile decodes and validates profile JSON.
func ParseProfile(data []byte) (*Profile, error) {
	if err := schemas.ValidateJSONString(profileschema.ReferenceProfile, string(data)); err != nil {
		return nil, &ProfileError{
			Message: "profile does not match schema",
			Cause:   err,
		}
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ProfileError{
			Message: "failed to unmarshal profile JSON",
			Cause:   err,
		}
	}
	if p.Bands == nil {
		p.Bands = map[types.Nutrient]types.Band{}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteProfile writes p as indented JSON.
func WriteProfile(w io.Writer, p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

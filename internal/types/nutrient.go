// Package types provides type definitions for structured data used throughout the nutrition-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Nutrient identifies a tracked nutrient. The set is closed: every table in the
// system (food columns, RDI bands, weights, reports) is keyed by these values.
type Nutrient int

// Nutrients in canonical order. Report rows and iteration follow this order.
const (
	Calories Nutrient = iota
	TotalFat
	SaturatedFat
	TransFat
	Cholesterol
	Sodium
	TotalCarbohydrate
	DietaryFiber
	TotalSugars
	AddedSugars
	Protein
	VitaminD3
	Calcium
	Iron
	Potassium
	Zinc
	VitaminB12
	VitaminC
	VitaminB6
	Magnesium
	Probiotics
	Omega3

	nutrientCount
)

// Unit is the measurement unit a nutrient quantity is expressed in.
type Unit string

const (
	UnitNone      Unit = ""
	UnitGram      Unit = "g"
	UnitMilligram Unit = "mg"
	UnitMicrogram Unit = "mcg"
	UnitIU        Unit = "IU"
	UnitPercentDV Unit = "%DV"
	UnitCFU       Unit = "CFUs"
)

type nutrientInfo struct {
	name string
	unit Unit
}

var nutrientTable = [nutrientCount]nutrientInfo{
	Calories:          {"Calories", UnitNone},
	TotalFat:          {"Total Fat", UnitGram},
	SaturatedFat:      {"Saturated Fat", UnitGram},
	TransFat:          {"Trans Fat", UnitGram},
	Cholesterol:       {"Cholesterol", UnitMilligram},
	Sodium:            {"Sodium", UnitMilligram},
	TotalCarbohydrate: {"Total Carbohydrate", UnitGram},
	DietaryFiber:      {"Dietary Fiber", UnitGram},
	TotalSugars:       {"Total Sugars", UnitGram},
	AddedSugars:       {"Added Sugars", UnitGram},
	Protein:           {"Protein", UnitGram},
	VitaminD3:         {"Vitamin D3", UnitIU},
	Calcium:           {"Calcium", UnitMilligram},
	Iron:              {"Iron", UnitMilligram},
	Potassium:         {"Potassium", UnitMilligram},
	Zinc:              {"Zinc", UnitMilligram},
	VitaminB12:        {"Vitamin B12", UnitMicrogram},
	VitaminC:          {"Vitamin C", UnitPercentDV},
	VitaminB6:         {"Vitamin B6", UnitPercentDV},
	Magnesium:         {"Magnesium", UnitMilligram},
	Probiotics:        {"Probiotics", UnitCFU},
	Omega3:            {"Omega-3 Fatty Acids", UnitGram},
}

// keyIndex maps the display key (e.g. "Protein (g)") back to the nutrient.
var keyIndex = func() map[string]Nutrient {
	m := make(map[string]Nutrient, nutrientCount)
	for _, n := range AllNutrients() {
		m[strings.ToLower(n.String())] = n
	}
	return m
}()

// AllNutrients returns every nutrient in canonical order.
func AllNutrients() []Nutrient {
	all := make([]Nutrient, 0, nutrientCount)
	for n := Nutrient(0); n < nutrientCount; n++ {
		all = append(all, n)
	}
	return all
}

// Valid reports whether n is a member of the enumeration.
func (n Nutrient) Valid() bool {
	return n >= 0 && n < nutrientCount
}

// Name returns the nutrient name without its unit suffix.
func (n Nutrient) Name() string {
	if !n.Valid() {
		return fmt.Sprintf("Nutrient(%d)", int(n))
	}
	return nutrientTable[n].name
}

// Unit returns the unit the nutrient is measured in.
func (n Nutrient) Unit() Unit {
	if !n.Valid() {
		return ""
	}
	return nutrientTable[n].unit
}

// String returns the display key used as the column name in tabular data,
// for example "Protein (g)" or "Calories".
func (n Nutrient) String() string {
	if !n.Valid() {
		return n.Name()
	}
	info := nutrientTable[n]
	if info.unit == "" {
		return info.name
	}
	return fmt.Sprintf("%s (%s)", info.name, info.unit)
}

// ParseNutrient resolves a display key to a nutrient. Matching ignores case and
// surrounding whitespace.
func ParseNutrient(key string) (Nutrient, error) {
	n, ok := keyIndex[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return 0, fmt.Errorf("unknown nutrient %q", key)
	}
	return n, nil
}

// MarshalText implements encoding.TextMarshaler so nutrients can key JSON maps.
func (n Nutrient) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("invalid nutrient %d", int(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nutrient) UnmarshalText(text []byte) error {
	parsed, err := ParseNutrient(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

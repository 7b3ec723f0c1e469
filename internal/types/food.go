//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Food is the nutrient profile of one named food, expressed per serving.
type Food struct {
	Name        string               `json:"name"`
	ServingSize float64              `json:"serving_size_g"`
	Nutrients   map[Nutrient]float64 `json:"nutrients"`
}

// FoodTable is the loaded food database. It keeps foods in source order and is
// not modified after construction.
type FoodTable struct {
	foods map[string]Food
	order []string
}

// NewFoodTable builds a table from foods in the given order. A later food with
// the same name replaces the earlier one but keeps its position.
func NewFoodTable(foods []Food) *FoodTable {
	t := &FoodTable{
		foods: make(map[string]Food, len(foods)),
		order: make([]string, 0, len(foods)),
	}
	for _, f := range foods {
		if _, exists := t.foods[f.Name]; !exists {
			t.order = append(t.order, f.Name)
		}
		nutrients := make(map[Nutrient]float64, len(f.Nutrients))
		for n, v := range f.Nutrients {
			nutrients[n] = v
		}
		f.Nutrients = nutrients
		t.foods[f.Name] = f
	}
	return t
}

// Get returns the food with the given name.
func (t *FoodTable) Get(name string) (Food, bool) {
	if t == nil {
		return Food{}, false
	}
	f, ok := t.foods[name]
	return f, ok
}

// Names returns food names in source order.
func (t *FoodTable) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// Len returns the number of foods in the table.
func (t *FoodTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Foods returns all foods in source order.
func (t *FoodTable) Foods() []Food {
	if t == nil {
		return nil
	}
	out := make([]Food, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.foods[name])
	}
	return out
}

// Selection maps a food name to the amount chosen, in grams.
type Selection map[string]float64

// Snapshot returns an independent copy of the selection.
func (s Selection) Snapshot() Selection {
	out := make(Selection, len(s))
	for name, amount := range s {
		out[name] = amount
	}
	return out
}

// Ordered returns the selected food names, first in the order given by known
// (typically FoodTable.Names) and then any remaining names sorted.
func (s Selection) Ordered(known []string) []string {
	out := make([]string, 0, len(s))
	seen := make(map[string]bool, len(s))
	for _, name := range known {
		if _, ok := s[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Intake maps a nutrient to the aggregated quantity consumed.
type Intake map[Nutrient]float64

// Nutrients returns the nutrients present in the intake in canonical order.
func (in Intake) Nutrients() []Nutrient {
	out := make([]Nutrient, 0, len(in))
	for _, n := range AllNutrients() {
		if _, ok := in[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

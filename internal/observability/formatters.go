// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/nutrition-scorer/internal/reference"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxAdjustmentsToShow caps the adjustment list, which can cover every weighted nutrient
	maxAdjustmentsToShow = 10
	// scoreBarWidth is the width of the score gauge
	scoreBarWidth = 40
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printBanner prints a single-line box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBanner(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintFoods outputs the size of the loaded food table and its first entries.
func (p *Printer) PrintFoods(table *types.FoodTable) {
	if table.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Loaded %d foods:\n\n", table.Len()))

	names := table.Names()
	count := min(len(names), maxItemsToShow)
	for i := 0; i < count; i++ {
		food, _ := table.Get(names[i])
		sb.WriteString(fmt.Sprintf("  • %s (%g g)\n", food.Name, food.ServingSize))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
	}

	p.printBox("FOOD DATABASE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIntake outputs every nutrient with a non-zero intake and where it sits
// against its band.
func (p *Printer) PrintIntake(intake types.Intake, profile *reference.Profile) {
	if len(intake) == 0 {
		return
	}

	var sb strings.Builder
	shown := 0
	for _, n := range intake.Nutrients() {
		value := intake[n]
		if value == 0 {
			continue
		}
		shown++
		sb.WriteString(fmt.Sprintf("%-23s %12.2f  %s\n", n, value, bandStatus(value, profile, n)))
	}
	if shown == 0 {
		sb.WriteString("No nutrients consumed\n")
	}

	p.printBox("NUTRIENT INTAKE", strings.TrimSuffix(sb.String(), "\n"))
}

// bandStatus marks a value as low, ok or high against the nutrient's band.
func bandStatus(value float64, profile *reference.Profile, n types.Nutrient) string {
	if profile == nil {
		return ""
	}
	band := profile.Band(n)
	if band.Max <= 0 {
		return ""
	}
	switch {
	case value < band.Min:
		return "↓ low"
	case value > band.Max:
		return "↑ high"
	default:
		return "✓ ok"
	}
}

// PrintScore outputs the health score with a gauge.
func (p *Printer) PrintScore(result types.ScoreResult) {
	filled := int(result.Score / 100 * scoreBarWidth)
	filled = max(0, min(filled, scoreBarWidth))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %s / 100\n", result.Formatted()))
	sb.WriteString(fmt.Sprintf("Label:  %s\n", result.Label.Interpretation()))
	sb.WriteString("\n")
	sb.WriteString("[" + strings.Repeat("#", filled) + strings.Repeat(".", scoreBarWidth-filled) + "]")

	p.printBox("HEALTH SCORE", sb.String())
}

// PrintAdjustments outputs the suggested nutrient adjustments.
func (p *Printer) PrintAdjustments(plan types.AdjustmentPlan) {
	if plan.Len() == 0 {
		p.printBanner("✅ NO ADJUSTMENTS NEEDED")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Suggested %d adjustments:\n\n", plan.Len()))

	count := min(plan.Len(), maxAdjustmentsToShow)
	for i := 0; i < count; i++ {
		a := plan.Adjustments[i]
		arrow, sign := "↑", "+"
		if a.Direction == types.Decrease {
			arrow, sign = "↓", "-"
		}
		sb.WriteString(fmt.Sprintf("%s %-23s %s%.2f\n", arrow, a.Nutrient, sign, a.Amount))
	}
	if plan.Len() > maxAdjustmentsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more adjustments", plan.Len()-maxAdjustmentsToShow))
	}

	p.printBox("IDEAL ADJUSTMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

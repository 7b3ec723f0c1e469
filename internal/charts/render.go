package charts

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jonathan/nutrition-scorer/internal/types"
)

const (
	defaultBarWidth = 30
	headroom        = 1.2 // Bars scale to 1.2x the panel maximum

	barFilled = "█" // U+2588 Full block
	barEmpty  = "░" // U+2591 Light shade
	markLine  = "─"
	markHead  = "┤"
)

// ANSI colors.
const (
	colorIntake   = "\033[34m" // blue
	colorBand     = "\033[90m" // gray
	colorIncrease = "\033[33m" // orange/yellow
	colorDecrease = "\033[31m" // red
	colorReset    = "\033[0m"
)

// PanelRenderer renders panels as horizontal bar charts.
type PanelRenderer struct {
	UseColor bool
	Width    int
	w        io.Writer
}

// NewPanelRenderer creates a renderer. A width <= 0 uses the default bar width.
func NewPanelRenderer(w io.Writer, useColor bool, width int) *PanelRenderer {
	if width <= 0 {
		width = defaultBarWidth
	}
	return &PanelRenderer{UseColor: useColor, Width: width, w: w}
}

// Render writes every panel, separated by blank lines.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (r *PanelRenderer) Render(panels []Panel) {
	if len(panels) == 0 {
		fmt.Fprintln(r.w, "No nutrient data")
		return
	}
	for i, p := range panels {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		r.renderPanel(p)
	}
}

//nolint:errcheck // writing to a terminal; errors are not recoverable
func (r *PanelRenderer) renderPanel(p Panel) {
	target, hasTarget := p.Target()

	scale := math.Max(math.Max(p.Intake, p.Min), p.Max)
	if hasTarget {
		scale = math.Max(scale, target)
	}
	scale *= headroom

	fmt.Fprintln(r.w, p.Nutrient)
	fmt.Fprintf(r.w, "  %-8s %s %s\n", "Intake", r.bar(p.Intake, scale, colorIntake), formatValue(p.Intake))
	fmt.Fprintf(r.w, "  %-8s %s %s\n", "Min RDI", r.bar(p.Min, scale, colorBand), formatValue(p.Min))
	fmt.Fprintf(r.w, "  %-8s %s %s\n", "Max RDI", r.bar(p.Max, scale, colorBand), formatValue(p.Max))

	if hasTarget {
		color := colorIncrease
		sign := "+"
		if p.Adjustment.Direction == types.Decrease {
			color = colorDecrease
			sign = "-"
		}
		fmt.Fprintf(r.w, "  %-8s %s %s (%s%.1f)\n",
			"Target", r.marker(target, scale, color), formatValue(target), sign, p.Adjustment.Amount)
	}
}

// bar draws value as a filled/empty bar scaled against scale.
func (r *PanelRenderer) bar(value, scale float64, color string) string {
	filled := r.cells(value, scale)
	var sb strings.Builder
	sb.WriteString(r.color(color))
	sb.WriteString(strings.Repeat(barFilled, filled))
	sb.WriteString(r.color(colorReset))
	sb.WriteString(strings.Repeat(barEmpty, r.width()-filled))
	return sb.String()
}

// marker draws a line ending at value, padded to the bar width.
func (r *PanelRenderer) marker(value, scale float64, color string) string {
	width := r.width()
	pos := r.cells(value, scale)
	if pos >= width {
		pos = width - 1
	}
	var sb strings.Builder
	sb.WriteString(r.color(color))
	sb.WriteString(strings.Repeat(markLine, pos))
	sb.WriteString(markHead)
	sb.WriteString(r.color(colorReset))
	sb.WriteString(strings.Repeat(" ", width-pos-1))
	return sb.String()
}

// cells converts a value to a number of bar cells in [0, width].
func (r *PanelRenderer) cells(value, scale float64) int {
	if scale <= 0 || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	width := r.width()
	n := int(math.Round(value / scale * float64(width)))
	if n == 0 {
		n = 1 // visible sliver for any positive value
	}
	if n > width {
		n = width
	}
	return n
}

// width returns the bar width, falling back to the default when unset.
func (r *PanelRenderer) width() int {
	if r.Width <= 0 {
		return defaultBarWidth
	}
	return r.Width
}

// color returns the ANSI code if color is enabled.
func (r *PanelRenderer) color(code string) string {
	if r.UseColor {
		return code
	}
	return ""
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

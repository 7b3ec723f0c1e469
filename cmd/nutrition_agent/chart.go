package main

import (
	"fmt"
	"io"

	"github.com/jonathan/nutrition-scorer/internal/charts"
	"github.com/jonathan/nutrition-scorer/internal/reports"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render intake and adjustment reports as terminal bar charts",
	Long:  "Joins the nutrient intake report with the ideal adjustments report by nutrient and draws intake, Min RDI, Max RDI and the adjustment target for each nutrient.",
	RunE:  runChart,
}

var (
	chartIntake      string
	chartAdjustments string
	chartProfile     string
	chartColor       bool
	chartWidth       int
)

func init() {
	chartCmd.Flags().StringVarP(&chartIntake, "intake", "i", reports.IntakeFile, "Path to the nutrient intake report")
	chartCmd.Flags().StringVarP(&chartAdjustments, "adjustments", "a", reports.AdjustmentsFile, "Path to the ideal adjustments report")
	chartCmd.Flags().StringVarP(&chartProfile, "profile", "p", "", "Reference profile used for nutrients missing from the intake report")
	chartCmd.Flags().BoolVar(&chartColor, "color", false, "Colorize the output")
	chartCmd.Flags().IntVar(&chartWidth, "width", 0, "Bar width in characters")

	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	return renderChart(chartIntake, chartAdjustments, chartProfile, chartColor, chartWidth, cmd.OutOrStdout())
}

// renderChart reads both reports and renders the joined panels.
func renderChart(intakePath, adjustmentsPath, profilePath string, color bool, width int, out io.Writer) error {
	intake, err := reports.ReadFile(intakePath, reports.ReadIntake)
	if err != nil {
		return fmt.Errorf("failed to read intake report: %w", err)
	}
	adjustments, err := reports.ReadFile(adjustmentsPath, reports.ReadAdjustments)
	if err != nil {
		return fmt.Errorf("failed to read adjustments report: %w", err)
	}
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	charts.NewPanelRenderer(out, color, width).Render(charts.Join(intake, adjustments, profile))
	return nil
}

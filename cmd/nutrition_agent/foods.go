package main

import (
	"fmt"
	"io"

	"github.com/jonathan/nutrition-scorer/internal/config"
	"github.com/jonathan/nutrition-scorer/internal/foods"
	"github.com/spf13/cobra"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "List the foods in the food database",
	RunE:  runFoods,
}

var foodsPath string

func init() {
	foodsCmd.Flags().StringVarP(&foodsPath, "foods", "f", config.DefaultFoods, "Path to the food database CSV")
	rootCmd.AddCommand(foodsCmd)
}

func runFoods(cmd *cobra.Command, _ []string) error {
	return listFoods(foodsPath, cmd.OutOrStdout())
}

// listFoods prints every food with its serving size, in file order.
func listFoods(path string, out io.Writer) error {
	table, err := foods.Load(path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%-32s %s\n", "Food", "Serving Size (g)")
	for _, f := range table.Foods() {
		_, _ = fmt.Fprintf(out, "%-32s %g\n", f.Name, f.ServingSize)
	}
	_, _ = fmt.Fprintf(out, "\n%d foods\n", table.Len())
	return nil
}

package main

import (
	"fmt"

	"github.com/jonathan/nutrition-scorer/internal/config"
	"github.com/jonathan/nutrition-scorer/internal/foods"
	"github.com/jonathan/nutrition-scorer/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	servePort       int
	serveFoods      string
	serveOutput     string
	serveProfile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the food database, the reference profile and an evaluate endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveFoods, "foods", "f", "", "Path to the food database CSV (default "+config.DefaultFoods+")")
	serveCmd.Flags().StringVarP(&serveOutput, "out", "o", "", "Directory to write reports to on every evaluation (default none)")
	serveCmd.Flags().StringVarP(&serveProfile, "profile", "p", "", "Path to a reference profile JSON (default built-in profile)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Reports are written only to an explicitly configured directory
	if cfg.OutputDir == config.DefaultOutputDir {
		cfg.OutputDir = ""
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("foods") {
		cfg.Foods = serveFoods
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = serveOutput
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = serveProfile
	}

	table, err := foods.Load(cfg.Foods)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Foods:     table,
		Profile:   profile,
		OutputDir: cfg.OutputDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

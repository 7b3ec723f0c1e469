// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default values used when neither flags, config file nor environment set a field.
const (
	DefaultFoods       = "foods2.csv"
	DefaultOutputDir   = "."
	DefaultPort        = 8080
	DefaultConcurrency = 4
)

// Environment variables read by FromEnv.
const (
	EnvFoods     = "NUTRITION_FOODS"
	EnvOutputDir = "NUTRITION_OUTPUT_DIR"
	EnvProfile   = "NUTRITION_PROFILE"
	EnvPort      = "NUTRITION_PORT"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Foods     string `json:"foods,omitempty"`      // Path to the food database CSV
	Selection string `json:"selection,omitempty"`  // Path to a Food/Amount (g) selection CSV
	OutputDir string `json:"output_dir,omitempty"` // Directory the reports are written to
	Profile   string `json:"profile,omitempty"`    // Path to a reference profile JSON
	Summary   string `json:"summary,omitempty"`    // Path to write the evaluation summary JSON

	// Server
	Port int `json:"port,omitempty"` // HTTP port for serve

	// Batch
	Concurrency int `json:"concurrency,omitempty"` // Evaluations run at once by batch

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed summaries
	Color   bool `json:"color,omitempty"`   // Colorize chart output
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from NUTRITION_* environment variables.
// An unparsable port is reported as an error.
func FromEnv() (Config, error) {
	cfg := Config{
		Foods:     os.Getenv(EnvFoods),
		OutputDir: os.Getenv(EnvOutputDir),
		Profile:   os.Getenv(EnvProfile),
	}
	if raw := os.Getenv(EnvPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config error: %s must be an integer: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Foods:       DefaultFoods,
		OutputDir:   DefaultOutputDir,
		Port:        DefaultPort,
		Concurrency: DefaultConcurrency,
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Foods != "" {
		if _, err := os.Stat(c.Foods); os.IsNotExist(err) {
			return fmt.Errorf("config error: foods file not found: %s", c.Foods)
		}
	}

	if c.Selection != "" {
		if _, err := os.Stat(c.Selection); os.IsNotExist(err) {
			return fmt.Errorf("config error: selection file not found: %s", c.Selection)
		}
	}

	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file values over environment and built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Foods == "" {
		result.Foods = defaults.Foods
	}
	if result.Selection == "" {
		result.Selection = defaults.Selection
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Summary == "" {
		result.Summary = defaults.Summary
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Resolve layers a config file (optional), the environment and the built-in
// defaults, in that order of precedence. CLI flags are applied on top by the caller.
func Resolve(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	base := env.MergeWithDefaults(Defaults())

	if path == "" {
		return base, nil
	}
	file, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := file.Validate(); err != nil {
		return Config{}, err
	}
	return file.MergeWithDefaults(base), nil
}

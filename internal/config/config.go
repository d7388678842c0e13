// Package config provides configuration loading for the simulation tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"cellsim/pkg/sims/life"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	RunLog     RunLogConfig     `yaml:"run_log"`
	Log        LogConfig        `yaml:"log"`
	Viewer     ViewerConfig     `yaml:"viewer"`
}

// GridConfig holds board dimensions and the random fill distribution.
type GridConfig struct {
	Rows              int       `yaml:"rows"`
	Cols              int       `yaml:"cols"`
	FillValues        []int     `yaml:"fill_values"`
	FillProbabilities []float64 `yaml:"fill_probabilities"` // must sum to exactly 1
}

// SimulationConfig holds run limits.
type SimulationConfig struct {
	Seed           int64 `yaml:"seed"`
	MaxGenerations int   `yaml:"max_generations"`
	TargetRegions  int   `yaml:"target_regions"`
	MaxAttempts    int   `yaml:"max_attempts"`
}

// StorageConfig locates the shape catalogue.
type StorageConfig struct {
	Path           string `yaml:"path"`
	ErrorOnMissing bool   `yaml:"error_on_missing"`
}

// RunLogConfig locates the per-attempt CSV log.
type RunLogConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ViewerConfig holds settings for the windowed viewer.
type ViewerConfig struct {
	Scale          int `yaml:"scale"`
	TPS            int `yaml:"tps"`
	StepsPerSecond int `yaml:"steps_per_second"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make a run impossible.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Life().Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Grid.FillValues) != len(c.Grid.FillProbabilities) {
		errs = append(errs, fmt.Errorf("grid: %d fill values but %d probabilities",
			len(c.Grid.FillValues), len(c.Grid.FillProbabilities)))
	}
	if c.Simulation.MaxAttempts <= 0 {
		errs = append(errs, errors.New("simulation: max_attempts must be positive"))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage: path must be set"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Life returns the board configuration for the simulation package.
func (c *Config) Life() life.Config {
	return life.Config{
		Rows:           c.Grid.Rows,
		Cols:           c.Grid.Cols,
		Values:         append([]int(nil), c.Grid.FillValues...),
		Probabilities:  append([]float64(nil), c.Grid.FillProbabilities...),
		MaxGenerations: c.Simulation.MaxGenerations,
	}
}

// Runner returns the runner configuration, using seed for the first attempt.
func (c *Config) Runner(seed int64) life.RunnerConfig {
	return life.RunnerConfig{
		Sim:           c.Life(),
		Seed:          seed,
		TargetRegions: c.Simulation.TargetRegions,
		MaxAttempts:   c.Simulation.MaxAttempts,
	}
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log: %w", err)
	}
	return lvl, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

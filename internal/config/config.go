// Package config loads optimizer settings from a YAML file and the
// QUORLIN_* environment variables. Environment values win over the file,
// command-line flags win over both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"quorlin/internal/ir"
)

// Environment variables read by ApplyEnv
const (
	EnvOptLevel      = "QUORLIN_OPT_LEVEL"
	EnvFixedPoint    = "QUORLIN_FIXED_POINT"
	EnvMaxIterations = "QUORLIN_MAX_ITERATIONS"
	EnvParallel      = "QUORLIN_PARALLEL"
	EnvVerify        = "QUORLIN_VERIFY"
	EnvLogVerbosity  = "QUORLIN_LOG_VERBOSITY"
	EnvLogPath       = "QUORLIN_LOG_PATH"
)

// Config is the full tool configuration
type Config struct {
	Optimizer Optimizer `yaml:"optimizer"`
	Log       Log       `yaml:"log"`
}

// Optimizer mirrors ir.Options
type Optimizer struct {
	Level         int  `yaml:"level"`
	FixedPoint    bool `yaml:"fixed_point"`
	MaxIterations int  `yaml:"max_iterations"`
	Parallel      bool `yaml:"parallel"`
	Verify        bool `yaml:"verify"`
}

// Log configures commonlog
type Log struct {
	Verbosity int    `yaml:"verbosity"`
	Path      string `yaml:"path"`
}

// ValidationError aggregates configuration problems
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	return "config validation failed: " + strings.Join(e.Issues, "; ")
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Optimizer: Optimizer{
			Level:         2,
			MaxIterations: ir.DefaultMaxIterations,
			Verify:        true,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the QUORLIN_* environment variables
func (c *Config) ApplyEnv() {
	c.Optimizer.Level = env.Int(EnvOptLevel, c.Optimizer.Level)
	c.Optimizer.MaxIterations = env.Int(EnvMaxIterations, c.Optimizer.MaxIterations)
	c.Log.Verbosity = env.Int(EnvLogVerbosity, c.Log.Verbosity)
	c.Log.Path = env.Str(EnvLogPath, c.Log.Path)

	if env.Has(EnvFixedPoint) {
		c.Optimizer.FixedPoint = env.Bool(EnvFixedPoint)
	}
	if env.Has(EnvParallel) {
		c.Optimizer.Parallel = env.Bool(EnvParallel)
	}
	if env.Has(EnvVerify) {
		c.Optimizer.Verify = env.Bool(EnvVerify)
	}
}

// Validate reports out-of-range settings
func (c *Config) Validate() error {
	var issues []string
	if c.Optimizer.Level < 0 || c.Optimizer.Level > ir.MaxLevel {
		issues = append(issues, fmt.Sprintf("optimizer.level must be between 0 and %d, got %d", ir.MaxLevel, c.Optimizer.Level))
	}
	if c.Optimizer.MaxIterations < 0 {
		issues = append(issues, fmt.Sprintf("optimizer.max_iterations must not be negative, got %d", c.Optimizer.MaxIterations))
	}
	if c.Log.Verbosity < 0 {
		issues = append(issues, fmt.Sprintf("log.verbosity must not be negative, got %d", c.Log.Verbosity))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// PipelineOptions converts the optimizer section for ir.NewPipeline
func (c *Config) PipelineOptions() ir.Options {
	return ir.Options{
		Level:         c.Optimizer.Level,
		FixedPoint:    c.Optimizer.FixedPoint,
		MaxIterations: c.Optimizer.MaxIterations,
		Parallel:      c.Optimizer.Parallel,
		Verify:        c.Optimizer.Verify,
	}
}

// LogPath returns the log file path, or nil for stderr, in the form
// commonlog.Configure expects
func (c *Config) LogPath() *string {
	if c.Log.Path == "" {
		return nil
	}
	return &c.Log.Path
}

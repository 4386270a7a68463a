package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the optional per-directory configuration file.
// CLI flags always override values loaded from it.
const DefaultConfigFile = ".minigrep.yaml"

// Color output modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents minigrep configuration options
type Config struct {
	// Color controls match highlighting: auto, always, or never.
	// "auto" enables color only when stdout is a terminal.
	Color string `yaml:"color"`

	// ExcludeDirs lists directory names skipped during recursive search.
	// Empty by default: a recursive search visits every directory unless
	// exclusions are configured here or via --exclude-dir.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// SkipHidden skips dot-directories during recursive search
	SkipHidden bool `yaml:"skip_hidden"`

	// LogLevel sets diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Color:    ColorAuto,
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks configuration values for correctness
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never (got %q)", c.Color)
	}
	return nil
}

// Package config loads the optional YAML defaults file of the gridconv
// command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds conversion defaults. Command line flags take precedence.
type Config struct {
	Datum     string `yaml:"datum,omitempty" json:"datum,omitempty"`
	Precision int    `yaml:"precision,omitempty" json:"precision,omitempty"` // MGRS precision in meters
	Bessel    bool   `yaml:"bessel,omitempty" json:"bessel,omitempty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Datum:     "wgs84",
		Precision: 1,
		Format:    "json",
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses YAML configuration data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that can be checked without the engine.
func (c *Config) Validate() error {
	switch c.Precision {
	case 1, 10, 100, 1000, 10000:
	default:
		return fmt.Errorf("precision must be one of 1, 10, 100, 1000 or 10000, got %d", c.Precision)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format must be json or yaml, got %q", c.Format)
	}
	return nil
}

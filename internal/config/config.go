// Package config loads the optional .proctor YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for harness configuration.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultMaxOutput = 1 << 20 // 1 MB
)

// Config holds the parsed .proctor configuration. All fields are
// optional; zero values represent defaults.
type Config struct {
	Version      int    `yaml:"version"`
	RawTimeout   string `yaml:"timeout"`    // e.g. "5s", "500ms"
	RawMaxOutput int    `yaml:"max_output"` // bytes
	Color        string `yaml:"color"`      // auto, always, never
}

// Timeout returns the configured per-test timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured output cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// ColorMode returns the configured color mode, defaulting to "auto".
func (c *Config) ColorMode() string {
	switch c.Color {
	case "always", "never":
		return c.Color
	}
	return "auto"
}

// Load reads the .proctor file from dir. A missing file yields a
// default Config without error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ".proctor")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading .proctor: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .proctor: %w", err)
	}
	return cfg, nil
}

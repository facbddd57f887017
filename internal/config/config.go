// Package config loads and validates the docnav YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is named.
const DefaultPath = "docnav.yaml"

// Config represents the application configuration.
type Config struct {
	Docs    DocsConfig    `yaml:"docs"`
	Output  OutputConfig  `yaml:"output"`
	Synth   SynthConfig   `yaml:"synth"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	History HistoryConfig `yaml:"history"`
}

// DocsConfig describes the documentation source tree.
type DocsConfig struct {
	Root          string            `yaml:"root"`
	Extensions    []string          `yaml:"extensions"`
	Exclude       []string          `yaml:"exclude"`
	ManifestName  string            `yaml:"manifest_name"`
	URLPrefix     string            `yaml:"url_prefix"`
	CategoryIcons map[string]string `yaml:"category_icons,omitempty"`
}

// OutputConfig names the generated artifacts.
type OutputConfig struct {
	Navigation string `yaml:"navigation"`
	Pages      string `yaml:"pages"`
	Report     string `yaml:"report,omitempty"` // optional build report JSON
}

// SynthConfig tunes manifest synthesis.
type SynthConfig struct {
	Concurrency int `yaml:"concurrency"` // 0 → runtime.NumCPU()
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// HistoryConfig controls the optional SQLite build history.
type HistoryConfig struct {
	Database string `yaml:"database,omitempty"`
}

// Load reads configuration from configPath, applies defaults and validates
// the result. An empty path falls back to DefaultPath, and a missing default
// file yields the built-in defaults. A named file that does not exist is an
// error.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Built-in defaults.
	case errors.Is(err, fs.ErrNotExist):
		return nil, ferrors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
			WithContext("path", configPath).
			Build()
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if configPath == "" {
		configPath = DefaultPath
	}
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

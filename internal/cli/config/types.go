// Package config provides configuration management for the xamlnav CLI.
//
// This package extends the shared project configuration from
// internal/config with CLI-specific fields (output mode, verbosity, worker
// count). The shared section types are re-exported here via type aliases.
package config

import (
	intconfig "github.com/leapstack-labs/xamlnav/internal/config"
)

// DetectConfig is an alias for the shared detection configuration.
type DetectConfig = intconfig.DetectConfig

// WatchConfig is an alias for the shared watch configuration.
type WatchConfig = intconfig.WatchConfig

// Config holds all CLI configuration options.
type Config struct {
	ShowLineNumbers bool          `koanf:"show_line_numbers"`
	OutputFormat    string        `koanf:"output"`
	Verbose         bool          `koanf:"verbose"`
	Force           bool          `koanf:"force"`
	Workers         int           `koanf:"workers"`
	Detect          *DetectConfig `koanf:"detect"`
	Watch           *WatchConfig  `koanf:"watch"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when none was found.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultWorkers = 4
)

// Project returns the settings shared with the language server.
func (c *Config) Project() *intconfig.ProjectConfig {
	p := &intconfig.ProjectConfig{
		ShowLineNumbers: c.ShowLineNumbers,
		Detect:          c.Detect,
		Watch:           c.Watch,
	}
	p.ApplyDefaults()
	return p
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Workers:      DefaultWorkers,
		Detect:       intconfig.DefaultDetectConfig(),
		Watch:        &WatchConfig{DebounceMS: intconfig.DefaultDebounceMS},
	}
}

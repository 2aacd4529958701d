// Package config provides shared configuration types for xamlnav.
// This package is decoupled from CLI concerns and can be used by the LSP
// and other tools that need to load project configuration.
package config

import "github.com/leapstack-labs/xamlnav/internal/detect"

// DetectConfig controls which documents are treated as XAML.
type DetectConfig struct {
	Extensions  []string `koanf:"extensions" yaml:"extensions,omitempty"`
	LanguageIDs []string `koanf:"language_ids" yaml:"language_ids,omitempty"`
	Markers     []string `koanf:"markers" yaml:"markers,omitempty"`
	Sniff       bool     `koanf:"sniff" yaml:"sniff"`
}

// Options converts the configuration into detector options.
func (c *DetectConfig) Options() detect.Options {
	if c == nil {
		return detect.DefaultOptions()
	}
	return detect.Options{
		Extensions:  c.Extensions,
		LanguageIDs: c.LanguageIDs,
		Markers:     c.Markers,
		Sniff:       c.Sniff,
	}
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms" yaml:"debounce_ms"`
}

// ProjectConfig holds the project configuration shared by the CLI and the LSP.
type ProjectConfig struct {
	ShowLineNumbers bool          `koanf:"show_line_numbers" yaml:"show_line_numbers"`
	Detect          *DetectConfig `koanf:"detect" yaml:"detect,omitempty"`
	Watch           *WatchConfig  `koanf:"watch" yaml:"watch,omitempty"`
}

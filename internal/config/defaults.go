package config

import "github.com/leapstack-labs/xamlnav/internal/detect"

// Default configuration values.
const (
	DefaultDebounceMS = 150
	DefaultSniff      = true
)

// DefaultDetectConfig returns detection settings matching detect.DefaultOptions.
func DefaultDetectConfig() *DetectConfig {
	opts := detect.DefaultOptions()
	return &DetectConfig{
		Extensions:  opts.Extensions,
		LanguageIDs: opts.LanguageIDs,
		Markers:     opts.Markers,
		Sniff:       opts.Sniff,
	}
}

// ApplyDefaults fills unset sections of a ProjectConfig.
func (c *ProjectConfig) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.Detect == nil {
		c.Detect = DefaultDetectConfig()
	}
	if c.Watch == nil {
		c.Watch = &WatchConfig{}
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = DefaultDebounceMS
	}
}

// Default returns a ProjectConfig with every default applied.
func Default() *ProjectConfig {
	c := &ProjectConfig{}
	c.ApplyDefaults()
	return c
}

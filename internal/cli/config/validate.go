package config

import (
	"fmt"
	"slices"
	"strings"
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of: %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Watch != nil && c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	if c.Detect != nil {
		for _, ext := range c.Detect.Extensions {
			if !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("detect.extensions: %q must start with a dot\nHint: use %q", ext, "."+ext)
			}
		}
	}
	return nil
}

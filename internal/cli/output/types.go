package output

import (
	"github.com/leapstack-labs/xamlnav/pkg/outline"
	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// OutlineOutput is the structured output of the outline command for one file.
type OutlineOutput struct {
	Path     string           `json:"path" yaml:"path"`
	Elements int              `json:"elements" yaml:"elements"`
	Symbols  []outline.Symbol `json:"symbols" yaml:"symbols"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// SymbolsOutput is the structured output of the symbols command.
type SymbolsOutput struct {
	Path    string          `json:"path" yaml:"path"`
	Query   string          `json:"query,omitempty" yaml:"query,omitempty"`
	Total   int             `json:"total" yaml:"total"`
	Entries []outline.Entry `json:"entries" yaml:"entries"`
}

// ElementInfo is the structured output of the info command.
type ElementInfo struct {
	Path       string            `json:"path" yaml:"path"`
	Position   token.Position    `json:"position" yaml:"position"`
	Found      bool              `json:"found" yaml:"found"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Tag        string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Span       *token.Span       `json:"span,omitempty" yaml:"span,omitempty"`
	Ancestors  []string          `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`
	Children   int               `json:"children" yaml:"children"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

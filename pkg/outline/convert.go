package outline

import (
	"fmt"

	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// ConvertOptions controls how symbols are rendered.
type ConvertOptions struct {
	// ShowLineNumbers appends " (line N)" to each symbol's detail.
	ShowLineNumbers bool
}

// Symbol is an outline entry ready for display in a navigation panel.
type Symbol struct {
	Name           string     `json:"name" yaml:"name"`
	Detail         string     `json:"detail" yaml:"detail"`
	Kind           Kind       `json:"kind" yaml:"kind"`
	Range          token.Span `json:"range" yaml:"range"`
	SelectionRange token.Span `json:"selection_range" yaml:"selection_range"`
	Children       []Symbol   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Convert maps an element forest to outline symbols. The result shares no
// memory with the forest.
func Convert(forest Forest, opts ConvertOptions) []Symbol {
	if len(forest) == 0 {
		return []Symbol{}
	}
	out := make([]Symbol, len(forest))
	for i := range forest {
		out[i] = convertElement(&forest[i], opts)
	}
	return out
}

func convertElement(e *Element, opts ConvertOptions) Symbol {
	sym := Symbol{
		Name:           e.Label,
		Detail:         Detail(e, opts),
		Kind:           e.Kind,
		Range:          e.Span,
		SelectionRange: e.NameSpan,
	}
	if len(e.Children) > 0 {
		sym.Children = make([]Symbol, len(e.Children))
		for i := range e.Children {
			sym.Children[i] = convertElement(&e.Children[i], opts)
		}
	}
	return sym
}

// Detail returns the detail text shown next to an element's label.
func Detail(e *Element, opts ConvertOptions) string {
	if opts.ShowLineNumbers {
		return fmt.Sprintf("%s (line %d)", e.TagName, e.Line())
	}
	return e.TagName
}

package outline

import (
	"strings"

	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// Walk visits every element depth-first in document order. fn receives the
// element, its depth (roots are 0) and its parent (nil for roots).
// Returning false skips the element's children.
func Walk(forest Forest, fn func(e, parent *Element, depth int) bool) {
	type frame struct {
		e      *Element
		parent *Element
		depth  int
	}

	stack := make([]frame, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, frame{e: &forest[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(f.e, f.parent, f.depth) {
			continue
		}
		for i := len(f.e.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{e: &f.e.Children[i], parent: f.e, depth: f.depth + 1})
		}
	}
}

// Entry is one row of the flattened outline.
type Entry struct {
	Label     string     `json:"label" yaml:"label"`
	TagName   string     `json:"tag" yaml:"tag"`
	Kind      Kind       `json:"kind" yaml:"kind"`
	Line      int        `json:"line" yaml:"line"` // 1-based
	Depth     int        `json:"depth" yaml:"depth"`
	Container string     `json:"container,omitempty" yaml:"container,omitempty"`
	Span      token.Span `json:"span" yaml:"span"`
}

// Flatten lists every element in depth-first order, for pick-by-name UIs.
func Flatten(forest Forest) []Entry {
	entries := make([]Entry, 0, Count(forest))
	Walk(forest, func(e, parent *Element, depth int) bool {
		entry := Entry{
			Label:   e.Label,
			TagName: e.TagName,
			Kind:    e.Kind,
			Line:    e.Line(),
			Depth:   depth,
			Span:    e.Span,
		}
		if parent != nil {
			entry.Container = parent.Label
		}
		entries = append(entries, entry)
		return true
	})
	return entries
}

// Count returns the number of elements in the forest.
func Count(forest Forest) int {
	n := 0
	Walk(forest, func(*Element, *Element, int) bool {
		n++
		return true
	})
	return n
}

// FilterEntries keeps entries whose label or tag contains query, ignoring
// case. An empty query keeps everything.
func FilterEntries(entries []Entry, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Label), query) ||
			strings.Contains(strings.ToLower(e.TagName), query) {
			out = append(out, e)
		}
	}
	return out
}

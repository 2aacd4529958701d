package outline

import "github.com/leapstack-labs/xamlnav/pkg/token"

// Element is one visual element of the markup.
type Element struct {
	TagName    string            `json:"tag" yaml:"tag"`
	Label      string            `json:"label" yaml:"label"`
	Kind       Kind              `json:"kind" yaml:"kind"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Span runs from the '<' of the opening tag to just past the '>' of the
	// matching end tag (or of the opening tag itself when self-closing).
	Span token.Span `json:"span" yaml:"span"`
	// NameSpan covers the tag name inside the opening tag.
	NameSpan token.Span `json:"name_span" yaml:"name_span"`

	SelfClosing bool      `json:"self_closing,omitempty" yaml:"self_closing,omitempty"`
	Children    []Element `json:"children,omitempty" yaml:"children,omitempty"`
}

// Forest is the ordered list of top-level elements of a document.
type Forest []Element

// Line returns the 1-based line the element starts on.
func (e *Element) Line() int {
	return e.Span.Start.Line + 1
}

// Attr returns an attribute value and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attributes[name]
	return v, ok
}

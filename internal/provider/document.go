package provider

import (
	"context"
	"time"

	"github.com/leapstack-labs/xamlnav/pkg/outline"
	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// ParsedDocument holds the parse results for a single document version.
type ParsedDocument struct {
	URI     string
	Version int
	Content string

	// ShowLineNumbers is the option Symbols were rendered with.
	ShowLineNumbers bool

	Forest  outline.Forest
	Symbols []outline.Symbol

	// ParseError is set when the scanner failed internally or the request
	// was canceled; Forest and Symbols are empty in that case.
	ParseError error

	// Metadata
	ParsedAt time.Time
}

// Parse creates a ParsedDocument from content, building the forest and
// the rendered symbols once.
func Parse(ctx context.Context, content string, uri string, version int, opts outline.ConvertOptions) *ParsedDocument {
	doc := &ParsedDocument{
		URI:             uri,
		Version:         version,
		Content:         content,
		ShowLineNumbers: opts.ShowLineNumbers,
		ParsedAt:        time.Now(),
	}

	forest, err := outline.ParseContext(ctx, content)
	doc.Forest = forest
	doc.ParseError = err
	doc.Symbols = outline.Convert(forest, opts)

	return doc
}

// HasParseError returns true if parsing failed.
func (d *ParsedDocument) HasParseError() bool {
	return d.ParseError != nil
}

// ElementAt returns the deepest element containing pos.
func (d *ParsedDocument) ElementAt(pos token.Position) (*outline.Element, bool) {
	return outline.ElementAt(d.Forest, pos)
}

// Entries returns the flattened outline.
func (d *ParsedDocument) Entries() []outline.Entry {
	return outline.Flatten(d.Forest)
}

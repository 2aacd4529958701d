package lsp

import (
	"sort"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/leapstack-labs/xamlnav/internal/detect"
	"github.com/leapstack-labs/xamlnav/pkg/token"
)

// Document represents an open text document in the editor.
type Document struct {
	URI        string // Document URI (file:///path/to/View.xaml)
	LanguageID string // Language identifier reported by the client
	Content    string // Full document content
	Version    int    // Version number, incremented on each change
	Lines      []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri, languageID, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = &Document{
		URI:        uri,
		LanguageID: languageID,
		Content:    content,
		Version:    version,
		Lines:      computeLineOffsets(content),
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a snapshot of a document by URI, or nil.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]
	if !ok {
		return nil
	}
	cp := *doc
	return &cp
}

// Update replaces an existing document's content.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.documents[uri]; ok {
		doc.Content = content
		doc.Version = version
		doc.Lines = computeLineOffsets(content)
	}
}

// List returns all open document URIs in sorted order.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// Detect describes the document for a detection predicate.
func (d *Document) Detect() detect.Document {
	return detect.Document{
		Path:       detect.PathFromURI(d.URI),
		LanguageID: d.LanguageID,
		Content:    d.Content,
	}
}

// GetLine returns the content of a specific line without its line break.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.Content)

	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1 // Exclude newline
		if end < start {
			end = start
		}
	}
	if end > start && d.Content[end-1] == '\r' {
		end--
	}

	return d.Content[start:end]
}

// ToTokenPosition converts an LSP position (UTF-16 columns) into a byte
// column position. Columns past the end of the line clamp to its length.
func (d *Document) ToTokenPosition(pos protocol.Position) token.Position {
	line := int(pos.Line)
	text := d.GetLine(line)

	units := int(pos.Character)
	col := 0
	for col < len(text) && units > 0 {
		r, size := utf8.DecodeRuneInString(text[col:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units < n {
			break
		}
		units -= n
		col += size
	}
	return token.Position{Line: line, Column: col}
}

// ToProtocolPosition converts a byte column position into an LSP position.
func (d *Document) ToProtocolPosition(pos token.Position) protocol.Position {
	text := d.GetLine(pos.Line)
	col := min(pos.Column, len(text))

	units := 0
	for i := 0; i < col; {
		r, size := utf8.DecodeRuneInString(text[i:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
		i += size
	}
	return protocol.Position{Line: uint32(max(pos.Line, 0)), Character: uint32(units)}
}

// ToProtocolRange converts a span into an LSP range.
func (d *Document) ToProtocolRange(s token.Span) protocol.Range {
	return protocol.Range{
		Start: d.ToProtocolPosition(s.Start),
		End:   d.ToProtocolPosition(s.End),
	}
}

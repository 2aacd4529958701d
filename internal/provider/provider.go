// Package provider caches the most recent outline so that frequent requests
// against the same document version (cursor moves, hovers, symbol refreshes)
// do not re-parse it.
package provider

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int
	Misses int
}

// Provider is a single-slot parse cache. The slot is keyed by document URI,
// version and the line-number display option; any change to one of them
// forces a re-parse.
type Provider struct {
	mu              sync.RWMutex
	current         *ParsedDocument
	showLineNumbers bool

	hits   atomic.Int64
	misses atomic.Int64

	logger *slog.Logger
}

// New creates a new Provider.
func New(showLineNumbers bool, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		showLineNumbers: showLineNumbers,
		logger:          logger,
	}
}

func (p *Provider) matches(uri string, version int) bool {
	return p.current != nil &&
		p.current.URI == uri &&
		p.current.Version == version &&
		p.current.ShowLineNumbers == p.showLineNumbers
}

// GetOrParse returns the cached ParsedDocument or parses content if the slot
// holds a different document, version or display option.
// Thread-safe for concurrent access.
func (p *Provider) GetOrParse(ctx context.Context, uri string, content string, version int) *ParsedDocument {
	p.mu.RLock()
	if p.matches(uri, version) {
		doc := p.current
		p.mu.RUnlock()
		p.hits.Add(1)
		return doc
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if p.matches(uri, version) {
		p.hits.Add(1)
		return p.current
	}
	p.misses.Add(1)

	doc := Parse(ctx, content, uri, version, outline.ConvertOptions{ShowLineNumbers: p.showLineNumbers})
	if doc.HasParseError() {
		// Failed parses are not cached; the next request tries again.
		p.logger.Error("Outline parse failed", "uri", uri, "version", version, "error", doc.ParseError)
		return doc
	}

	p.logger.Debug("Parsed document", "uri", uri, "version", version, "elements", outline.Count(doc.Forest))
	p.current = doc
	return doc
}

// Get returns the cached ParsedDocument for uri without parsing.
// Returns nil if the slot holds something else.
func (p *Provider) Get(uri string) *ParsedDocument {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current != nil && p.current.URI == uri {
		return p.current
	}
	return nil
}

// Invalidate empties the slot if it holds uri.
func (p *Provider) Invalidate(uri string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.URI == uri {
		p.current = nil
	}
}

// InvalidateAll empties the slot.
func (p *Provider) InvalidateAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
}

// ShowLineNumbers returns the current display option.
func (p *Provider) ShowLineNumbers() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.showLineNumbers
}

// SetShowLineNumbers changes the display option. Toggling it drops the
// cached symbols since their detail text depends on it.
func (p *Provider) SetShowLineNumbers(show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.showLineNumbers == show {
		return
	}
	p.showLineNumbers = show
	p.current = nil
	p.logger.Debug("Line number display changed", "show", show)
}

// Stats returns a snapshot of the hit and miss counters.
func (p *Provider) Stats() Stats {
	return Stats{Hits: int(p.hits.Load()), Misses: int(p.misses.Load())}
}

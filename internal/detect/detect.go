// Package detect decides which documents are XAML-family markup.
//
// The outline parser itself never consults detection; callers (the language
// server and CLI commands) use a Predicate to gate their requests.
package detect

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"
)

// Document carries whatever a caller knows about a file. Any field may be empty.
type Document struct {
	Path       string
	LanguageID string
	Content    string
}

// Predicate reports whether a document should be outlined.
type Predicate func(Document) bool

// Always accepts every document.
func Always(Document) bool { return true }

// Default values for Options.
var (
	DefaultExtensions  = []string{".xaml", ".axaml"}
	DefaultLanguageIDs = []string{"xaml", "axaml"}
	DefaultMarkers     = []string{
		"http://schemas.microsoft.com/winfx/2006/xaml",
		"https://github.com/avaloniaui",
		"http://schemas.microsoft.com/dotnet/2021/maui",
	}
)

// sniffLimit bounds how much content is searched for namespace markers.
const sniffLimit = 4096

// Options configures the default predicate.
type Options struct {
	Extensions  []string // matched case-insensitively, with or without the dot
	LanguageIDs []string
	Markers     []string // namespace URIs looked for near the top of the content
	Sniff       bool
}

// DefaultOptions returns the built-in detection settings.
func DefaultOptions() Options {
	return Options{
		Extensions:  append([]string(nil), DefaultExtensions...),
		LanguageIDs: append([]string(nil), DefaultLanguageIDs...),
		Markers:     append([]string(nil), DefaultMarkers...),
		Sniff:       true,
	}
}

// Detector is the configurable default predicate.
type Detector struct {
	extensions  map[string]struct{}
	languageIDs map[string]struct{}
	markers     []string
	sniff       bool
}

// New builds a Detector. Empty lists fall back to the defaults.
func New(opts Options) *Detector {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if len(opts.LanguageIDs) == 0 {
		opts.LanguageIDs = DefaultLanguageIDs
	}
	if len(opts.Markers) == 0 {
		opts.Markers = DefaultMarkers
	}

	d := &Detector{
		extensions:  make(map[string]struct{}, len(opts.Extensions)),
		languageIDs: make(map[string]struct{}, len(opts.LanguageIDs)),
		markers:     opts.Markers,
		sniff:       opts.Sniff,
	}
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		d.extensions[ext] = struct{}{}
	}
	for _, id := range opts.LanguageIDs {
		d.languageIDs[strings.ToLower(strings.TrimSpace(id))] = struct{}{}
	}
	return d
}

// Match implements Predicate.
func (d *Detector) Match(doc Document) bool {
	if doc.LanguageID != "" {
		if _, ok := d.languageIDs[strings.ToLower(doc.LanguageID)]; ok {
			return true
		}
	}
	if doc.Path != "" {
		if _, ok := d.extensions[strings.ToLower(filepath.Ext(doc.Path))]; ok {
			return true
		}
	}
	if d.sniff && doc.Content != "" {
		head := doc.Content
		if len(head) > sniffLimit {
			head = head[:sniffLimit]
		}
		for _, m := range d.markers {
			if strings.Contains(head, m) {
				return true
			}
		}
	}
	return false
}

// Predicate returns d.Match as a Predicate.
func (d *Detector) Predicate() Predicate {
	return d.Match
}

// PathFromURI converts a file:// document URI to a filesystem path. Other
// schemes are returned unchanged so extension matching still works on them.
func PathFromURI(docURI string) string {
	if !strings.HasPrefix(docURI, uri.FileScheme+"://") {
		return docURI
	}
	// Filename panics on URIs it cannot parse.
	if _, err := url.ParseRequestURI(docURI); err != nil {
		return docURI
	}
	return uri.URI(docURI).Filename()
}

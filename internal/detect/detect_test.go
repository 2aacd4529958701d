package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_Match(t *testing.T) {
	d := New(DefaultOptions())

	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{"xaml extension", Document{Path: "/src/MainWindow.xaml"}, true},
		{"axaml extension", Document{Path: "App.axaml"}, true},
		{"extension case", Document{Path: "Views/Shell.XAML"}, true},
		{"language id", Document{Path: "untitled-1", LanguageID: "xaml"}, true},
		{"language id case", Document{LanguageID: "AXAML"}, true},
		{"wpf namespace", Document{Path: "page.xml", Content: `<Page xmlns:x="http://schemas.microsoft.com/winfx/2006/xaml">`}, true},
		{"avalonia namespace", Document{Content: `<UserControl xmlns="https://github.com/avaloniaui">`}, true},
		{"plain xml", Document{Path: "pom.xml", Content: `<project/>`}, false},
		{"go file", Document{Path: "main.go", LanguageID: "go"}, false},
		{"empty", Document{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Match(tt.doc))
		})
	}
}

func TestDetector_NoSniff(t *testing.T) {
	opts := DefaultOptions()
	opts.Sniff = false
	d := New(opts)

	assert.False(t, d.Match(Document{Path: "page.xml", Content: `xmlns="https://github.com/avaloniaui"`}))
	assert.True(t, d.Match(Document{Path: "page.xaml"}))
}

func TestDetector_CustomExtensions(t *testing.T) {
	d := New(Options{Extensions: []string{"xml", ".XAMLX"}})

	assert.True(t, d.Match(Document{Path: "layout.xml"}))
	assert.True(t, d.Match(Document{Path: "flow.xamlx"}))
	assert.False(t, d.Match(Document{Path: "view.xaml"}), "custom list replaces the defaults")
	assert.True(t, d.Match(Document{LanguageID: "xaml"}), "language ids fall back to defaults")
}

func TestDetector_SniffLimit(t *testing.T) {
	d := New(DefaultOptions())
	content := make([]byte, sniffLimit+10)
	for i := range content {
		content[i] = ' '
	}
	late := string(content) + DefaultMarkers[0]

	assert.False(t, d.Match(Document{Content: late}))
}

func TestAlways(t *testing.T) {
	var p Predicate = Always
	assert.True(t, p(Document{}))
	assert.True(t, New(DefaultOptions()).Predicate()(Document{Path: "a.xaml"}))
}

func TestPathFromURI(t *testing.T) {
	assert.Equal(t, "/tmp/MainWindow.xaml", PathFromURI("file:///tmp/MainWindow.xaml"))
	assert.Equal(t, "untitled:Untitled-1", PathFromURI("untitled:Untitled-1"))
}

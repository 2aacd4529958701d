package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style

	// Tree connectors and element tags in outlines
	Enumerator lipgloss.Style
	Tag        lipgloss.Style
	Location   lipgloss.Style

	kinds map[outline.Kind]lipgloss.Style
}

// NewStyles builds the style set for a lipgloss renderer.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	s := &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("12")),

		StatusSuccess: lr.NewStyle().Foreground(lipgloss.Color("10")).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(lipgloss.Color("9")).SetString("✗"),

		Enumerator: lr.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1),
		Tag:        lr.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Location:   lr.NewStyle().Foreground(lipgloss.Color("6")),
	}

	s.kinds = map[outline.Kind]lipgloss.Style{
		outline.KindClass:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		outline.KindPackage:  lr.NewStyle().Foreground(lipgloss.Color("12")),
		outline.KindFunction: lr.NewStyle().Foreground(lipgloss.Color("11")),
		outline.KindString:   lr.NewStyle().Foreground(lipgloss.Color("10")),
		outline.KindArray:    lr.NewStyle().Foreground(lipgloss.Color("14")),
		outline.KindFile:     lr.NewStyle().Foreground(lipgloss.Color("5")),
		outline.KindObject:   lr.NewStyle(),
	}
	return s
}

// Kind returns the style for labels of the given category.
func (s *Styles) Kind(k outline.Kind) lipgloss.Style {
	if st, ok := s.kinds[k]; ok {
		return st
	}
	return s.kinds[outline.KindObject]
}

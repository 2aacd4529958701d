package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// NewPickCommand creates the pick command.
func NewPickCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick <file>",
		Short: "Interactively pick an element and print its location",
		Long: `Open a filterable list of the outline elements of a XAML file. Press /
to filter, enter to choose and esc to cancel.

The chosen element is printed as path:line:col (1-based), ready to pass to
an editor. The list itself is drawn on stderr.`,
		Example: `  # Jump to an element with vim
  vim $(xamlnav pick Views/MainWindow.xaml | awk -F: '{print "+"$2, $1}')`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, args[0])
		},
	}

	return cmd
}

func runPick(cmd *cobra.Command, path string) error {
	c := NewCommandContext(cmd)

	doc, err := c.Load(cmd.Context(), path, fileVersion(path))
	if err != nil {
		return err
	}

	entries := doc.Entries()
	if len(entries) == 0 {
		c.Renderer.Warning(path + " has no outline elements")
		return nil
	}

	p := tea.NewProgram(newPickModel(path, entries),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(pickModel)
	if !ok || m.chosen == nil {
		c.Logger.Debug("Pick canceled")
		return nil
	}
	c.Renderer.Println(m.location())
	return nil
}

// pickItem adapts an outline entry to the bubbles list.
type pickItem struct {
	entry outline.Entry
}

func (i pickItem) Title() string {
	return strings.Repeat("  ", i.entry.Depth) + i.entry.Label
}

func (i pickItem) Description() string {
	desc := fmt.Sprintf("%s%s · line %d", strings.Repeat("  ", i.entry.Depth), i.entry.TagName, i.entry.Line)
	if i.entry.Container != "" {
		desc += " · in " + i.entry.Container
	}
	return desc
}

func (i pickItem) FilterValue() string {
	return i.entry.Label + " " + i.entry.TagName
}

// pickModel is the bubbletea model of the picker.
type pickModel struct {
	path   string
	list   list.Model
	chosen *outline.Entry
}

func newPickModel(path string, entries []outline.Entry) pickModel {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = pickItem{entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = path
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return pickModel{path: path, list: l}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Keys typed into the filter belong to the list.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickItem); ok {
				entry := item.entry
				m.chosen = &entry
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			if m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	return m.list.View()
}

// location formats the chosen element as path:line:col, 1-based.
func (m pickModel) location() string {
	if m.chosen == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", m.path, m.chosen.Span.Start.Line+1, m.chosen.Span.Start.Column+1)
}

package commands

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/xamlnav/internal/testutil"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

func newSampleModel(t *testing.T) pickModel {
	t.Helper()
	entries := outline.Flatten(outline.Parse(testutil.SampleWindow))
	require.Len(t, entries, 6)
	return newPickModel("Views/MainWindow.xaml", entries)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPickModel_Enter(t *testing.T) {
	m := newSampleModel(t)
	m.list.Select(3)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(pickModel)

	assert.True(t, isQuit(cmd))
	require.NotNil(t, got.chosen)
	assert.Equal(t, "TestButton", got.chosen.Label)
	assert.Equal(t, "Views/MainWindow.xaml:11:13", got.location())
}

func TestPickModel_Cancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := newSampleModel(t)

			next, cmd := m.Update(key)
			got := next.(pickModel)

			assert.True(t, isQuit(cmd))
			assert.Nil(t, got.chosen)
			assert.Empty(t, got.location())
		})
	}
}

func TestPickModel_WindowSize(t *testing.T) {
	m := newSampleModel(t)

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	got := next.(pickModel)

	assert.Nil(t, cmd)
	assert.Equal(t, 100, got.list.Width())
	assert.Equal(t, 30, got.list.Height())
}

func TestPickItem(t *testing.T) {
	item := pickItem{entry: outline.Entry{
		Label:     "TestButton",
		TagName:   "Button",
		Line:      11,
		Depth:     2,
		Container: "[StackPanel]",
	}}

	assert.Equal(t, "    TestButton", item.Title())
	assert.Equal(t, "    Button · line 11 · in [StackPanel]", item.Description())
	assert.Equal(t, "TestButton Button", item.FilterValue())
}

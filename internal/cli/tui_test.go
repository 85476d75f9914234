package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m FamilyListModel, keys ...tea.KeyMsg) (FamilyListModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(FamilyListModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestFamilyListNavigation(t *testing.T) {
	m := NewFamilyListModel()

	m, _ = press(t, m, keyUp)
	assert.Equal(t, 0, m.Cursor, "cursor stays at the top")

	m, _ = press(t, m, keyDown, keyDown)
	assert.Equal(t, 2, m.Cursor)

	for range graphFamilies {
		m, _ = press(t, m, keyDown)
	}
	assert.Equal(t, len(graphFamilies)-1, m.Cursor, "cursor stops at the bottom")
}

func TestFamilyListSelect(t *testing.T) {
	m, cmd := press(t, NewFamilyListModel(), keyDown, keyEnter)

	require.NotNil(t, m.Selected)
	assert.Equal(t, graphFamilies[1].name, m.Selected.name)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFamilyListQuit(t *testing.T) {
	m, cmd := press(t, NewFamilyListModel(), keyQuit)

	assert.Nil(t, m.Selected)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFamilyListView(t *testing.T) {
	view := NewFamilyListModel().View()
	for _, f := range graphFamilies {
		assert.Contains(t, view, f.name)
	}
	assert.True(t, strings.Contains(view, "[1/"))
}

func TestFamilyDefaultsBuild(t *testing.T) {
	for _, f := range graphFamilies {
		t.Run(f.name, func(t *testing.T) {
			require.Len(t, f.defaults, f.sizes)
			g, err := f.build(f.defaults)
			require.NoError(t, err)
			assert.Positive(t, g.N())
		})
	}
}

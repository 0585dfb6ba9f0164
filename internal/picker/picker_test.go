package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	out, ok := m.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigateAndCommit(t *testing.T) {
	m := New([]string{"feat: a", "fix: b\n\n- why", "docs: c"})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyUp})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.cursor)

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, Choice{Index: 1, Message: "fix: b\n\n- why", Action: Commit}, m.Choice())
}

func TestJumpAndCopy(t *testing.T) {
	m, _ := press(t, New([]string{"a", "b", "c"}), runes("3"), runes("9"), runes("c"))
	assert.Equal(t, Choice{Index: 2, Message: "c", Action: Copy}, m.Choice())
}

func TestQuit(t *testing.T) {
	m, cmd := press(t, New([]string{"a"}), runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, Abort, m.Choice().Action)
	assert.Equal(t, -1, m.Choice().Index)
}

func TestEnterWithoutCandidates(t *testing.T) {
	m, _ := press(t, New(nil), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Abort, m.Choice().Action)
}

func TestView(t *testing.T) {
	m, _ := press(t, New([]string{"feat: a", "fix: b\n\n- why"}), runes("2"))
	view := m.View()
	assert.Contains(t, view, "1. feat: a")
	assert.Contains(t, view, "> 2. fix: b")
	assert.Contains(t, view, "- why")
	assert.Contains(t, view, "enter commit")
}

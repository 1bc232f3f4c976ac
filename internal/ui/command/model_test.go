package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want CommandMsg
		ok   bool
	}{
		{"add Buy milk", CommandMsg{Name: "add", Args: "Buy milk"}, true},
		{"  a   Buy milk  ", CommandMsg{Name: "add", Args: "Buy milk"}, true},
		{"GOTO 2025-03-10", CommandMsg{Name: "goto", Args: "2025-03-10"}, true},
		{"today", CommandMsg{Name: "today"}, true},
		{"q", CommandMsg{Name: "quit"}, true},
		{"   ", CommandMsg{}, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(80, 24)
	for _, r := range "note hi" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: "note", Args: "hi"}, cmd())
	assert.Empty(t, m.input.Value())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

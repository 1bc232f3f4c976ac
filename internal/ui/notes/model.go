// Package notes is the quick-note widget: a short list of notes with an
// inline editor.
package notes

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/theme"
)

// LoadedMsg carries the notes read from the store.
type LoadedMsg struct {
	Notes []model.Note
	Err   error
}

// ChangedMsg is sent after a note is added, saved or deleted.
type ChangedMsg struct {
	Status string
	Err    error
}

// Model lists notes and edits one at a time.
type Model struct {
	svc     *service.Service
	keys    *keys.KeyMap
	notes   []model.Note
	cursor  int
	editor  textarea.Model
	editing bool
	editID  int64
	width   int
	height  int
}

// New creates the notes widget.
func New(svc *service.Service, k *keys.KeyMap, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Write a note..."
	ta.ShowLineNumbers = false
	ta.SetWidth(max(10, width-4))
	ta.SetHeight(4)

	return Model{
		svc:    svc,
		keys:   k,
		editor: ta,
		width:  width,
		height: height,
	}
}

// Init loads the notes.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Editing reports whether the editor has focus. The root model must not
// intercept keys while it does.
func (m Model) Editing() bool { return m.editing }

// Notes returns the loaded notes, newest edit first.
func (m Model) Notes() []model.Note { return m.notes }

// SetNotes replaces the listed notes, keeping the cursor in range.
func (m *Model) SetNotes(notes []model.Note) {
	m.notes = notes
	if m.cursor >= len(notes) {
		m.cursor = max(0, len(notes)-1)
	}
}

// Update handles messages for the notes widget.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err == nil {
			m.SetNotes(msg.Notes)
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditorKeys(msg)
		}
		return m.handleKeys(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.startEdit(0, "")
	case key.Matches(msg, m.keys.Edit):
		if n, ok := m.selected(); ok {
			return m, m.startEdit(n.ID, n.Content)
		}
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.selected(); ok {
			return m, m.delete(n.ID)
		}
	}
	return m, nil
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEdit()
		return m, nil
	case "ctrl+s":
		content := strings.TrimSpace(m.editor.Value())
		id := m.editID
		m.stopEdit()
		if content == "" && id == 0 {
			return m, nil
		}
		return m, m.save(id, content)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) startEdit(id int64, content string) tea.Cmd {
	m.editing = true
	m.editID = id
	m.editor.SetValue(content)
	return m.editor.Focus()
}

func (m *Model) stopEdit() {
	m.editing = false
	m.editID = 0
	m.editor.Reset()
	m.editor.Blur()
}

func (m Model) selected() (model.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return model.Note{}, false
	}
	return m.notes[m.cursor], true
}

// View renders the notes, or the editor while editing.
func (m Model) View() string {
	title := theme.SectionTitleStyle.Render("Notes")

	if m.editing {
		hint := theme.HelpStyle.Render("ctrl+s save · esc cancel")
		return lipgloss.JoinVertical(lipgloss.Left, title, m.editor.View(), hint)
	}

	if len(m.notes) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			theme.HelpStyle.Render("No notes. Press n to write one."))
	}

	lines := []string{title}
	for i, n := range m.notes {
		line := firstLine(n.Content, max(10, m.width-6))
		if i == m.cursor {
			lines = append(lines, theme.SelectedItemStyle.Render(line))
		} else {
			lines = append(lines, theme.ListItemStyle.Render(line))
		}
		if len(lines) >= max(2, m.height) {
			break
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// firstLine returns the first line of s, truncated to width runes.
func firstLine(s string, width int) string {
	line, _, _ := strings.Cut(s, "\n")
	if line == "" {
		line = "(empty)"
	}
	r := []rune(line)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return line
}

// Load returns a tea.Cmd that fetches every note.
func (m Model) Load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		notes, err := svc.Notes().GetAll(context.Background())
		return LoadedMsg{Notes: notes, Err: err}
	}
}

// Add returns a tea.Cmd that creates a note with content.
func (m Model) Add(content string) tea.Cmd {
	return m.save(0, content)
}

func (m Model) save(id int64, content string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		if id == 0 {
			if _, err := svc.Notes().Add(ctx, content); err != nil {
				return ChangedMsg{Err: err}
			}
			return ChangedMsg{Status: "Note added"}
		}
		if _, err := svc.Notes().Update(ctx, id, content); err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "Note saved"}
	}
}

func (m Model) delete(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if _, err := svc.Notes().Delete(context.Background(), id); err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "Note deleted"}
	}
}

// SetSize updates the widget dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(max(10, width-4))
}

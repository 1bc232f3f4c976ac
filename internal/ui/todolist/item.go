package todolist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.Todo
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Title }

// Title returns the todo title for the list.
func (i TodoItem) Title() string { return i.Todo.Title }

// Description returns the todo description.
func (i TodoItem) Description() string { return i.Todo.Description }

// ItemDelegate implements list.ItemDelegate for rendering todo lines.
type ItemDelegate struct {
	// today returns the reference date for relative labels.
	today func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}
	today := time.Now()
	if d.today != nil {
		today = d.today()
	}
	fmt.Fprint(w, RenderLine(ti.Todo, today, index == m.Index()))
}

// RenderLine formats one todo: checkbox, priority, title and, for todos
// not scheduled today, a relative day label.
func RenderLine(t model.Todo, today time.Time, selected bool) string {
	prefix := "○"
	if t.Done() {
		prefix = "✓"
	}

	pri := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))

	when := ""
	if t.Date != model.FormatDate(today) {
		when = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render("  " + insight.RelativeDay(t.Date, today))
	}

	title := t.Title
	if t.Done() {
		title = theme.DoneItemStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s%s", prefix, pri, title, when)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!! "
	case model.PriorityLow:
		return "!  "
	default:
		return "   "
	}
}

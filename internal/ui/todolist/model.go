package todolist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/theme"
)

// LoadedMsg is sent when the todos for a day have been loaded.
type LoadedMsg struct {
	Date  string
	Todos []model.Todo
	Err   error
}

// ChangedMsg is sent after a todo mutation. The root model reloads the
// dashboard on it.
type ChangedMsg struct {
	Status string
	Err    error
}

// EditMsg asks the root model to open the todo form. Todo is nil for a
// new todo scheduled on Date.
type EditMsg struct {
	Todo *model.Todo
	Date string
}

// Model is the day view: the todos scheduled for one date.
type Model struct {
	list   list.Model
	svc    *service.Service
	keys   *keys.KeyMap
	date   string
	width  int
	height int
}

// New creates a todo list showing today.
func New(svc *service.Service, k *keys.KeyMap, width, height int) Model {
	delegate := ItemDelegate{today: svc.Now}
	l := list.New([]list.Item{}, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list:   l,
		svc:    svc,
		keys:   k,
		date:   svc.Today(),
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the current day.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Date returns the day being shown.
func (m Model) Date() string { return m.date }

// Todos returns the todos currently listed.
func (m Model) Todos() []model.Todo {
	items := m.list.Items()
	out := make([]model.Todo, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(TodoItem); ok {
			out = append(out, ti.Todo)
		}
	}
	return out
}

// SelectedTodo returns the highlighted todo.
func (m Model) SelectedTodo() (model.Todo, bool) {
	ti, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return ti.Todo, true
}

// SetDate switches the day being shown and reloads.
func (m *Model) SetDate(date string) tea.Cmd {
	m.date = date
	return m.Load()
}

// Update handles messages for the todo list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil || msg.Date != m.date {
			return m, nil
		}
		items := make([]list.Item, len(msg.Todos))
		for i, t := range msg.Todos {
			items[i] = TodoItem{Todo: t}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		return m, m.shiftDate(-1)
	case key.Matches(msg, m.keys.NextDay):
		return m, m.shiftDate(1)
	case key.Matches(msg, m.keys.Today):
		return m, m.SetDate(m.svc.Today())
	case key.Matches(msg, m.keys.Add):
		date := m.date
		return m, func() tea.Msg { return EditMsg{Date: date} }
	}

	todo, ok := m.SelectedTodo()
	if ok {
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditMsg{Todo: &todo, Date: todo.Date} }
		case key.Matches(msg, m.keys.Toggle):
			return m, m.toggle(todo.ID)
		case key.Matches(msg, m.keys.Delete):
			return m, m.delete(todo.ID)
		case key.Matches(msg, m.keys.Tomorrow):
			return m, m.moveTomorrow(todo.ID)
		case key.Matches(msg, m.keys.MoveHere):
			return m, m.moveToday(todo.ID)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) shiftDate(days int) tea.Cmd {
	next, err := model.AddDays(m.date, days)
	if err != nil {
		return nil
	}
	return m.SetDate(next)
}

// View renders the day heading and its todos.
func (m Model) View() string {
	today := m.svc.Now()
	heading := theme.SectionTitleStyle.Render(
		fmt.Sprintf("%s · %s", insight.RelativeDay(m.date, today), m.date),
	)

	progress := insight.DailyProgress(m.Todos())
	counter := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("  %d/%d done", progress.Done, progress.Total))

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(max(1, m.height-2)).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Nothing planned.\nPress n to add a todo.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, heading+counter, "", body)
}

// Load returns a tea.Cmd that fetches the todos for the current date.
func (m Model) Load() tea.Cmd {
	svc := m.svc
	date := m.date
	return func() tea.Msg {
		todos, err := svc.Todos().GetByDate(context.Background(), date)
		return LoadedMsg{Date: date, Todos: todos, Err: err}
	}
}

func (m Model) toggle(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.Todos().Toggle(context.Background(), id)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		if todo.Done() {
			return ChangedMsg{Status: "Completed: " + todo.Title}
		}
		return ChangedMsg{Status: "Reopened: " + todo.Title}
	}
}

func (m Model) delete(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		res, err := svc.Todos().Delete(context.Background(), id)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		if !res.Success {
			return ChangedMsg{Status: "Todo already deleted"}
		}
		return ChangedMsg{Status: "Todo deleted"}
	}
}

func (m Model) moveTomorrow(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.Todos().MoveToTomorrow(context.Background(), id)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "Moved to tomorrow: " + todo.Title}
	}
}

func (m Model) moveToday(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		todo, err := svc.Todos().MoveToToday(context.Background(), id)
		if err != nil {
			return ChangedMsg{Err: err}
		}
		return ChangedMsg{Status: "Moved to today: " + todo.Title}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(1, height-2))
}

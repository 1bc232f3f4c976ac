// Package pomodoro is the work-mode screen around the pomodoro timer.
package pomodoro

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/pomodoro"
	"github.com/nhle/dayboard/internal/theme"
)

// tickInterval is how often a running timer is advanced.
const tickInterval = time.Second

// SessionDoneMsg carries a finished work session to be recorded.
type SessionDoneMsg struct {
	Session model.PomodoroSession
}

// tickMsg advances the timer. tag drops ticks from a superseded loop.
type tickMsg struct {
	tag int
}

// Model renders the timer and forwards keys to it.
type Model struct {
	timer  *pomodoro.Timer
	keys   *keys.KeyMap
	bar    progress.Model
	todo   *model.Todo
	tag    int
	width  int
	height int
}

// New creates the work-mode screen around timer.
func New(timer *pomodoro.Timer, k *keys.KeyMap, width, height int) Model {
	m := Model{
		timer: timer,
		keys:  k,
		bar: progress.New(
			progress.WithGradient("#CC5DE8", "#5B9BD5"),
			progress.WithoutPercentage(),
		),
	}
	m.SetSize(width, height)
	return m
}

// Timer returns the underlying timer.
func (m Model) Timer() *pomodoro.Timer { return m.timer }

// Focus attributes the next work phase to todo. A nil todo clears it.
func (m *Model) Focus(todo *model.Todo) {
	m.todo = todo
}

// Update handles timer keys and ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.tag != m.tag || !m.timer.Running() {
			return m, nil
		}
		session, _ := m.timer.Tick(tickInterval)
		cmds := []tea.Cmd{done(session)}
		if m.timer.Running() {
			cmds = append(cmds, m.tick())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Timer):
			if m.timer.Running() {
				m.timer.Pause()
				return m, nil
			}
			m.timer.Start(m.todoID())
			m.tag++
			return m, m.tick()
		case key.Matches(msg, m.keys.Skip):
			session := m.timer.Skip()
			m.tag++
			cmds := []tea.Cmd{done(session)}
			if m.timer.Running() {
				cmds = append(cmds, m.tick())
			}
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Reset):
			m.timer.Reset()
			m.tag++
			return m, nil
		}
	}
	return m, nil
}

func (m Model) todoID() *int64 {
	if m.todo == nil {
		return nil
	}
	id := m.todo.ID
	return &id
}

func (m Model) tick() tea.Cmd {
	tag := m.tag
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{tag: tag}
	})
}

func done(session *model.PomodoroSession) tea.Cmd {
	if session == nil {
		return nil
	}
	s := *session
	return func() tea.Msg { return SessionDoneMsg{Session: s} }
}

// View renders the phase, countdown and progress bar.
func (m Model) View() string {
	phase := m.timer.Phase()
	title := theme.PhaseStyle(phase).Render(PhaseLabel(phase))

	state := "paused"
	if m.timer.Running() {
		state = "running"
	}

	lines := []string{
		title,
		"",
		lipgloss.NewStyle().Bold(true).Render(FormatRemaining(m.timer.Remaining())),
		m.bar.ViewAs(m.timer.Progress()),
		theme.HelpStyle.Render(fmt.Sprintf("%s · %d completed", state, m.timer.Completed())),
	}
	if m.todo != nil {
		lines = append(lines, "", "Working on: "+m.todo.Title)
	}
	lines = append(lines, "", theme.HelpStyle.Render("s start/pause · S skip · R reset · esc back"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = min(60, max(10, width-8))
}

// PhaseLabel names a phase for display.
func PhaseLabel(phase model.SessionKind) string {
	switch phase {
	case model.SessionShortBreak:
		return "Short break"
	case model.SessionLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}

// FormatRemaining renders d as MM:SS, clamped at zero.
func FormatRemaining(d time.Duration) string {
	d = max(0, d).Round(time.Second)
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/pomodoro"
	"github.com/nhle/dayboard/internal/schedule"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/ui/command"
	"github.com/nhle/dayboard/internal/ui/todolist"
	workview "github.com/nhle/dayboard/internal/ui/pomodoro"
	"github.com/nhle/dayboard/tests/testutil"
)

var now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

func newTestApp(t *testing.T) (Model, *service.Service) {
	t.Helper()
	clock := testutil.NewClock(now)
	svc := service.New(testutil.NewTestStore(t), zap.NewNop(), service.WithClock(clock.Now))
	timer := pomodoro.NewTimer(pomodoro.DefaultSettings(), clock.Now)
	return New(svc, nil, timer, zap.NewNop()), svc
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOnboardingShownForNewUser(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, m.checkOnboarding()())
	assert.Equal(t, ViewOnboarding, m.CurrentView())
}

func TestOnboardingSkippedForKnownUser(t *testing.T) {
	m, svc := newTestApp(t)
	_, err := svc.User().CompleteOnboarding(context.Background(), model.UserInput{Name: "Ada"})
	require.NoError(t, err)

	m, _ = update(t, m, m.checkOnboarding()())
	assert.Equal(t, ViewDashboard, m.CurrentView())
}

func TestAddCommandCreatesTodo(t *testing.T) {
	m, svc := newTestApp(t)

	m, cmd := update(t, m, command.CommandMsg{Name: "add", Args: "Buy milk"})
	require.NotNil(t, cmd)

	changed, ok := cmd().(todolist.ChangedMsg)
	require.True(t, ok)
	require.NoError(t, changed.Err)

	m, _ = update(t, m, changed)
	status, isErr := m.Status()
	assert.False(t, isErr)
	assert.Equal(t, "Added: Buy milk", status)

	todos, err := svc.Todos().GetByDate(context.Background(), "2025-03-12")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, model.PriorityMedium, todos[0].Priority)
}

func TestAddCommandWithoutTitleOpensForm(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, command.CommandMsg{Name: "add"})
	assert.Equal(t, ViewTodoForm, m.CurrentView())
}

func TestGotoCommand(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, command.CommandMsg{Name: "goto", Args: "2025-03-20"})
	assert.Equal(t, "2025-03-20", m.todoList.Date())

	m, _ = update(t, m, command.CommandMsg{Name: "goto", Args: "tomorrow"})
	assert.Equal(t, "2025-03-13", m.todoList.Date())

	m, _ = update(t, m, command.CommandMsg{Name: "goto", Args: "someday"})
	_, isErr := m.Status()
	assert.True(t, isErr)
	assert.Equal(t, "2025-03-13", m.todoList.Date())
}

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestApp(t)

	m, cmd := update(t, m, command.CommandMsg{Name: "dance"})
	assert.Nil(t, cmd)
	status, _ := m.Status()
	assert.Equal(t, "Unknown command: dance", status)
}

func TestCommandPaletteOpensAndCloses(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, press(":"))
	assert.Equal(t, ViewCommand, m.CurrentView())

	m, _ = update(t, m, command.CancelMsg{})
	assert.Equal(t, ViewDashboard, m.CurrentView())
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, press("?"))
	assert.Equal(t, ViewHelp, m.CurrentView())

	m, _ = update(t, m, press("?"))
	assert.Equal(t, ViewDashboard, m.CurrentView())
}

func TestWorkModeToggle(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, press("w"))
	assert.Equal(t, ViewWork, m.CurrentView())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDashboard, m.CurrentView())
}

func TestTabSwitchesPane(t *testing.T) {
	m, _ := newTestApp(t)
	require.Equal(t, PaneTodos, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PaneNotes, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PaneTodos, m.focus)
}

func TestSessionDoneIsRecorded(t *testing.T) {
	m, svc := newTestApp(t)
	session := model.PomodoroSession{
		Kind:        model.SessionWork,
		DurationSec: 1500,
		StartedAt:   now.Add(-25 * time.Minute),
		EndedAt:     now,
	}

	m, cmd := update(t, m, workview.SessionDoneMsg{Session: session})
	require.NotNil(t, cmd)
	recorded, ok := cmd().(sessionRecordedMsg)
	require.True(t, ok)
	require.NoError(t, recorded.err)

	_, _ = update(t, m, recorded)
	count, err := svc.Pomodoro().CountToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRolloverMovesToNewDay(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, schedule.RolloverMsg{Date: "2025-03-13"})
	assert.Equal(t, "2025-03-13", m.todoList.Date())
}

func TestFailureShowsRetryHint(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = update(t, m, todolist.ChangedMsg{Err: assert.AnError})
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, assert.AnError.Error())

	m, _ = update(t, m, press("r"))
	_, isErr = m.Status()
	assert.False(t, isErr)
}

func TestViewRendersDashboard(t *testing.T) {
	m, svc := newTestApp(t)
	_, err := svc.User().CompleteOnboarding(context.Background(), model.UserInput{Name: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Loading...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, m.loadBoard()())

	out := m.View()
	assert.Contains(t, out, "Dayboard · Ada")
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "Position")
}

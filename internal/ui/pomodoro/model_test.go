package pomodoro

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/pomodoro"
	"github.com/nhle/dayboard/tests/testutil"
)

func newTestModel(t *testing.T, work time.Duration) Model {
	t.Helper()
	clock := testutil.NewClock(time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local))
	settings := pomodoro.DefaultSettings()
	settings.Work = work
	return New(pomodoro.NewTimer(settings, clock.Now), keys.DefaultKeyMap(), 80, 24)
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartSchedulesTick(t *testing.T) {
	m := newTestModel(t, 2*time.Second)

	m, cmd := m.Update(press("s"))
	assert.True(t, m.Timer().Running())
	assert.NotNil(t, cmd)

	m, _ = m.Update(press("s"))
	assert.False(t, m.Timer().Running())
}

func TestTickFinishesWorkPhase(t *testing.T) {
	m := newTestModel(t, 2*time.Second)
	todo := model.Todo{ID: 7, Title: "Write report"}
	m.Focus(&todo)

	m, _ = m.Update(press("s"))
	m, _ = m.Update(tickMsg{tag: m.tag})
	assert.Equal(t, time.Second, m.Timer().Remaining())

	m, cmd := m.Update(tickMsg{tag: m.tag})
	require.NotNil(t, cmd)
	assert.Equal(t, model.SessionShortBreak, m.Timer().Phase())

	var done *SessionDoneMsg
	for _, msg := range collect(cmd) {
		if d, ok := msg.(SessionDoneMsg); ok {
			done = &d
		}
	}
	require.NotNil(t, done)
	assert.Equal(t, 2, done.Session.DurationSec)
	require.NotNil(t, done.Session.TodoID)
	assert.Equal(t, int64(7), *done.Session.TodoID)
}

func TestStaleTickIgnored(t *testing.T) {
	m := newTestModel(t, time.Minute)
	m, _ = m.Update(press("s"))

	m, cmd := m.Update(tickMsg{tag: m.tag - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, time.Minute, m.Timer().Remaining())
}

func TestResetStopsTimer(t *testing.T) {
	m := newTestModel(t, time.Minute)
	m, _ = m.Update(press("s"))
	m, _ = m.Update(tickMsg{tag: m.tag})

	m, _ = m.Update(press("R"))
	assert.False(t, m.Timer().Running())
	assert.Equal(t, time.Minute, m.Timer().Remaining())
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "25:00", FormatRemaining(25*time.Minute))
	assert.Equal(t, "00:09", FormatRemaining(9*time.Second))
	assert.Equal(t, "00:00", FormatRemaining(-time.Second))
}

func TestViewShowsPhase(t *testing.T) {
	m := newTestModel(t, time.Minute)
	out := m.View()
	assert.Contains(t, out, "Focus")
	assert.Contains(t, out, "01:00")
}

// collect runs cmd and flattens any batch into its messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

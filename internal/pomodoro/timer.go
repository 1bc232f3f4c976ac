// Package pomodoro implements the work-mode timer: alternating work and
// break phases with a long break after every Nth work phase.
package pomodoro

import (
	"time"

	"github.com/nhle/dayboard/internal/model"
)

// Settings controls phase lengths and transitions.
type Settings struct {
	Work              time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int
	AutoStartBreaks   bool
	AutoStartWork     bool
}

// DefaultSettings is the classic 25/5/15 cycle with a long break every
// fourth work phase.
func DefaultSettings() Settings {
	return Settings{
		Work:              25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
	}
}

// SettingsFromConfig converts the minute-based config section.
func SettingsFromConfig(cfg model.PomodoroConfig) Settings {
	return Settings{
		Work:              time.Duration(cfg.WorkMinutes) * time.Minute,
		ShortBreak:        time.Duration(cfg.ShortBreakMinutes) * time.Minute,
		LongBreak:         time.Duration(cfg.LongBreakMinutes) * time.Minute,
		LongBreakInterval: cfg.LongBreakInterval,
		AutoStartBreaks:   cfg.AutoStartBreaks,
		AutoStartWork:     cfg.AutoStartWork,
	}
}

// Duration returns the full length of phase.
func (s Settings) Duration(phase model.SessionKind) time.Duration {
	switch phase {
	case model.SessionShortBreak:
		return s.ShortBreak
	case model.SessionLongBreak:
		return s.LongBreak
	default:
		return s.Work
	}
}

// Timer is the pomodoro state machine. It does no timekeeping of its own:
// the caller feeds elapsed time through Tick. Timer is not safe for
// concurrent use.
type Timer struct {
	settings  Settings
	now       func() time.Time
	phase     model.SessionKind
	remaining time.Duration
	running   bool
	completed int
	todoID    *int64
	startedAt time.Time
}

// NewTimer returns a stopped timer at the start of a work phase.
func NewTimer(settings Settings, now func() time.Time) *Timer {
	if settings.LongBreakInterval < 1 {
		settings.LongBreakInterval = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Timer{
		settings:  settings,
		now:       now,
		phase:     model.SessionWork,
		remaining: settings.Work,
	}
}

// Phase returns the current phase.
func (t *Timer) Phase() model.SessionKind { return t.phase }

// Remaining returns the time left in the current phase.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Running reports whether the timer is counting down.
func (t *Timer) Running() bool { return t.running }

// Completed returns how many work phases have finished.
func (t *Timer) Completed() int { return t.completed }

// TodoID returns the todo the current work phase is attributed to.
func (t *Timer) TodoID() *int64 { return t.todoID }

// Settings returns the active settings.
func (t *Timer) Settings() Settings { return t.settings }

// Progress returns how much of the current phase has elapsed, in [0, 1].
func (t *Timer) Progress() float64 {
	total := t.settings.Duration(t.phase)
	if total <= 0 {
		return 1
	}
	return 1 - float64(t.remaining)/float64(total)
}

// Start begins or resumes the countdown. todoID, when non-nil, attributes
// the work phase to a todo.
func (t *Timer) Start(todoID *int64) {
	if t.running {
		return
	}
	if t.startedAt.IsZero() {
		t.startedAt = t.now()
	}
	if todoID != nil {
		t.todoID = todoID
	}
	t.running = true
}

// Pause stops the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	t.running = false
}

// Toggle starts a paused timer or pauses a running one.
func (t *Timer) Toggle() {
	if t.running {
		t.Pause()
		return
	}
	t.Start(nil)
}

// Reset restarts the current phase from its full length and stops it.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.settings.Duration(t.phase)
	t.startedAt = time.Time{}
}

// Tick advances a running timer by elapsed. When the phase runs out the
// timer moves to the next phase. A finished work phase yields its session.
func (t *Timer) Tick(elapsed time.Duration) (*model.PomodoroSession, bool) {
	if !t.running || elapsed <= 0 {
		return nil, false
	}
	t.remaining -= elapsed
	if t.remaining > 0 {
		return nil, false
	}
	return t.advance(), true
}

// Skip ends the current phase early. A work phase that was started still
// counts and yields its session.
func (t *Timer) Skip() *model.PomodoroSession {
	return t.advance()
}

// advance records the finished phase and switches to the next one.
func (t *Timer) advance() *model.PomodoroSession {
	var session *model.PomodoroSession
	ended := t.now()

	if t.phase == model.SessionWork && !t.startedAt.IsZero() {
		t.completed++
		worked := t.settings.Work - max(t.remaining, 0)
		session = &model.PomodoroSession{
			Kind:        model.SessionWork,
			DurationSec: int(worked.Round(time.Second).Seconds()),
			StartedAt:   t.startedAt,
			EndedAt:     ended,
			TodoID:      t.todoID,
		}
	}

	switch t.phase {
	case model.SessionWork:
		// Only a finished work phase can earn the long break.
		if session != nil && t.completed%t.settings.LongBreakInterval == 0 {
			t.phase = model.SessionLongBreak
		} else {
			t.phase = model.SessionShortBreak
		}
		t.running = t.running && t.settings.AutoStartBreaks
	default:
		t.phase = model.SessionWork
		t.running = t.running && t.settings.AutoStartWork
	}

	t.remaining = t.settings.Duration(t.phase)
	t.startedAt = time.Time{}
	if t.running {
		t.startedAt = ended
	}
	return session
}

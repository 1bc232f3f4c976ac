package model

import "time"

// SessionKind identifies the phase a pomodoro session covered.
type SessionKind string

// Session kinds.
const (
	SessionWork       SessionKind = "work"
	SessionShortBreak SessionKind = "short_break"
	SessionLongBreak  SessionKind = "long_break"
)

// PomodoroSession is a completed work interval recorded for history.
type PomodoroSession struct {
	ID          string      `json:"id" db:"id"`
	Kind        SessionKind `json:"kind" db:"kind"`
	DurationSec int         `json:"duration_sec" db:"duration_sec"`
	StartedAt   time.Time   `json:"started_at" db:"started_at"`
	EndedAt     time.Time   `json:"ended_at" db:"ended_at"`
	TodoID      *int64      `json:"todo_id,omitempty" db:"todo_id"`
}

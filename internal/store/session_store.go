package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nhle/dayboard/internal/model"
)

// sessionRow adds the local day column used for per-day queries.
type sessionRow struct {
	model.PomodoroSession
	Day string `db:"day"`
}

// AddPomodoroSession records a finished pomodoro interval. Generates a
// UUID if ID is empty. The session is filed under the local day it started.
func (s *SQLiteStore) AddPomodoroSession(
	ctx context.Context,
	session model.PomodoroSession,
) (model.PomodoroSession, error) {
	db, err := s.conn()
	if err != nil {
		return model.PomodoroSession{}, err
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Kind == "" {
		session.Kind = model.SessionWork
	}
	if session.StartedAt.IsZero() || session.EndedAt.Before(session.StartedAt) {
		return model.PomodoroSession{}, model.NewValidationError("ended_at", "must not be before started_at")
	}

	day := model.FormatDate(session.StartedAt.Local())
	_, err = db.ExecContext(ctx, `
		INSERT INTO pomodoro_sessions (id, kind, duration_sec, day, started_at, ended_at, todo_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Kind, session.DurationSec, day,
		session.StartedAt.UTC(), session.EndedAt.UTC(), session.TodoID,
	)
	if err != nil {
		return model.PomodoroSession{}, fmt.Errorf("creating pomodoro session: %w", err)
	}
	return session, nil
}

// GetPomodoroSessionsByDay returns the sessions started on day, oldest first.
func (s *SQLiteStore) GetPomodoroSessionsByDay(
	ctx context.Context,
	day string,
) ([]model.PomodoroSession, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if _, err := model.ParseDate(day); err != nil {
		return nil, model.NewValidationError("day", "must be YYYY-MM-DD")
	}

	var rows []sessionRow
	err = db.SelectContext(ctx, &rows, `
		SELECT id, kind, duration_sec, day, started_at, ended_at, todo_id
		FROM pomodoro_sessions
		WHERE day = ?
		ORDER BY started_at`, day)
	if err != nil {
		return nil, fmt.Errorf("querying pomodoro sessions for %s: %w", day, err)
	}

	sessions := make([]model.PomodoroSession, len(rows))
	for i, r := range rows {
		sessions[i] = r.PomodoroSession
	}
	return sessions, nil
}

// CountPomodoroSessions counts work sessions with start <= day <= end.
func (s *SQLiteStore) CountPomodoroSessions(ctx context.Context, start, end string) (int, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	if err := validateRange(start, end); err != nil {
		return 0, err
	}

	var count int
	err = db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM pomodoro_sessions
		WHERE kind = ? AND day >= ? AND day <= ?`,
		model.SessionWork, start, end)
	if err != nil {
		return 0, fmt.Errorf("counting pomodoro sessions: %w", err)
	}
	return count, nil
}

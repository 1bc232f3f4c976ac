package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

// PomodoroService records work-mode history.
type PomodoroService struct {
	store  store.SessionStore
	logger *zap.Logger
	today  func() string
}

// Record stores a finished session.
func (s *PomodoroService) Record(ctx context.Context, session model.PomodoroSession) (model.PomodoroSession, error) {
	saved, err := s.store.AddPomodoroSession(ctx, session)
	if err != nil {
		return model.PomodoroSession{}, err
	}
	s.logger.Info("pomodoro recorded",
		zap.String("id", saved.ID),
		zap.Int("duration_sec", saved.DurationSec),
	)
	return saved, nil
}

// Today returns the sessions started today.
func (s *PomodoroService) Today(ctx context.Context) ([]model.PomodoroSession, error) {
	return s.store.GetPomodoroSessionsByDay(ctx, s.today())
}

// CountToday returns the number of work sessions finished today.
func (s *PomodoroService) CountToday(ctx context.Context) (int, error) {
	today := s.today()
	return s.store.CountPomodoroSessions(ctx, today, today)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

// Board is the dashboard view model for one day.
type Board struct {
	Date      string
	Today     []model.Todo
	Progress  insight.Progress
	Calendar  insight.Calendar
	Months    []string
	Important []model.Todo
	Overdue   []model.Todo
	Position  insight.Position
	Notes     []model.Note
	// User is nil before onboarding.
	User      *model.User
	Pomodoros int
}

// Dashboard loads everything the main screen shows for today.
func (s *Service) Dashboard(ctx context.Context) (Board, error) {
	now := s.now()
	b := Board{Date: model.FormatDate(now)}

	var err error
	if b.Today, err = s.store.GetTodosByDate(ctx, b.Date); err != nil {
		return Board{}, fmt.Errorf("loading today: %w", err)
	}
	b.Progress = insight.DailyProgress(b.Today)

	start, end := insight.LookbackWindow(now, s.windows.LookbackDays)
	year, err := s.store.GetTodosByDateRange(ctx, start, end)
	if err != nil {
		return Board{}, fmt.Errorf("loading activity: %w", err)
	}
	b.Calendar = insight.BuildCalendar(year, now, s.windows.LookbackDays)
	b.Months = insight.MonthLabels(b.Calendar.Weeks)
	b.Position = insight.PositionFor(year, s.windows.LookbackDays)

	if b.Important, err = s.important(ctx, now); err != nil {
		return Board{}, err
	}
	if b.Overdue, err = s.overdue(ctx, now); err != nil {
		return Board{}, err
	}

	if b.Notes, err = s.store.GetAllNotes(ctx); err != nil {
		return Board{}, fmt.Errorf("loading notes: %w", err)
	}

	u, err := s.store.GetUser(ctx)
	switch {
	case err == nil:
		b.User = &u
	case !errors.Is(err, store.ErrNotFound):
		return Board{}, fmt.Errorf("loading user: %w", err)
	}

	if b.Pomodoros, err = s.store.CountPomodoroSessions(ctx, b.Date, b.Date); err != nil {
		return Board{}, fmt.Errorf("counting pomodoros: %w", err)
	}

	s.logger.Debug("dashboard loaded",
		zap.String("date", b.Date),
		zap.Int("today", len(b.Today)),
		zap.Int("important", len(b.Important)),
		zap.Int("overdue", len(b.Overdue)),
	)
	return b, nil
}

// Important returns the upcoming high priority todos.
func (s *Service) Important(ctx context.Context) ([]model.Todo, error) {
	return s.important(ctx, s.now())
}

// Overdue returns the unfinished todos from the past week.
func (s *Service) Overdue(ctx context.Context) ([]model.Todo, error) {
	return s.overdue(ctx, s.now())
}

// Position returns the score and tier over the lookback window.
func (s *Service) Position(ctx context.Context) (insight.Position, error) {
	now := s.now()
	start, end := insight.LookbackWindow(now, s.windows.LookbackDays)
	todos, err := s.store.GetTodosByDateRange(ctx, start, end)
	if err != nil {
		return insight.Position{}, fmt.Errorf("loading activity: %w", err)
	}
	return insight.PositionFor(todos, s.windows.LookbackDays), nil
}

func (s *Service) important(ctx context.Context, now time.Time) ([]model.Todo, error) {
	start, end := insight.ImportantWindow(now, s.windows.ImportantDays)
	todos, err := s.store.GetTodosByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading important todos: %w", err)
	}
	return insight.Important(todos, now, s.windows.ImportantDays), nil
}

func (s *Service) overdue(ctx context.Context, now time.Time) ([]model.Todo, error) {
	start, end := insight.OverdueWindow(now, s.windows.OverdueDays)
	todos, err := s.store.GetTodosByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading overdue todos: %w", err)
	}
	return insight.Overdue(todos, now, s.windows.OverdueDays), nil
}

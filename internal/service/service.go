// Package service is the request surface the UI calls. It wraps the
// store with input handling and logging and assembles the dashboard
// view model from the insight package.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

// Result is the acknowledgement returned by mutations that produce no
// entity.
type Result struct {
	Success bool `json:"success"`
}

// Windows sets the day spans the dashboard classifies over.
type Windows struct {
	ImportantDays int
	OverdueDays   int
	LookbackDays  int
}

// DefaultWindows returns the standard 3/7/365 day windows.
func DefaultWindows() Windows {
	return Windows{
		ImportantDays: insight.DefaultImportantDays,
		OverdueDays:   insight.DefaultOverdueDays,
		LookbackDays:  insight.DefaultLookbackDays,
	}
}

// WindowsFromConfig converts the insight config section, keeping
// defaults for unset values.
func WindowsFromConfig(cfg model.InsightConfig) Windows {
	w := DefaultWindows()
	if cfg.ImportantDays > 0 {
		w.ImportantDays = cfg.ImportantDays
	}
	if cfg.OverdueDays > 0 {
		w.OverdueDays = cfg.OverdueDays
	}
	if cfg.LookbackDays > 0 {
		w.LookbackDays = cfg.LookbackDays
	}
	return w
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source that decides "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithWindows overrides the dashboard windows.
func WithWindows(w Windows) Option {
	return func(s *Service) { s.windows = w }
}

// Service groups the per-entity facades over one store.
type Service struct {
	store   store.Store
	logger  *zap.Logger
	now     func() time.Time
	windows Windows

	todos    *TodoService
	notes    *NoteService
	user     *UserService
	pomodoro *PomodoroService
}

// New creates a Service on st.
func New(st store.Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:   st,
		logger:  logger,
		now:     time.Now,
		windows: DefaultWindows(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.todos = &TodoService{store: st, logger: logger.Named("todos"), today: s.Today}
	s.notes = &NoteService{store: st, logger: logger.Named("notes")}
	s.user = &UserService{store: st, logger: logger.Named("user")}
	s.pomodoro = &PomodoroService{store: st, logger: logger.Named("pomodoro"), today: s.Today}
	return s
}

// Todos returns the todo facade.
func (s *Service) Todos() *TodoService { return s.todos }

// Notes returns the notes facade.
func (s *Service) Notes() *NoteService { return s.notes }

// User returns the user facade.
func (s *Service) User() *UserService { return s.user }

// Pomodoro returns the pomodoro history facade.
func (s *Service) Pomodoro() *PomodoroService { return s.pomodoro }

// Windows returns the active dashboard windows.
func (s *Service) Windows() Windows { return s.windows }

// Now returns the current time from the service clock.
func (s *Service) Now() time.Time { return s.now() }

// Today returns the current local date as YYYY-MM-DD.
func (s *Service) Today() string {
	return model.FormatDate(s.now())
}

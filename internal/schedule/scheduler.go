// Package schedule runs the wall-clock jobs of the dashboard: the
// midnight rollover that moves "today" forward and the daily reminder.
// Job results reach the Bubble Tea program as messages over a channel.
package schedule

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
)

// rolloverSpec fires at local midnight.
const rolloverSpec = "0 0 * * *"

// RolloverMsg is a tea.Msg sent when the local date changes.
type RolloverMsg struct {
	Date string
}

// ReminderMsg is a tea.Msg sent at the configured reminder time.
type ReminderMsg struct {
	Date string
}

// Scheduler owns a cron runner and the channel its jobs report on.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	now     func() time.Time
	eventCh chan tea.Msg
	jobs    map[string]cron.EntryID
	mu      gosync.Mutex
	running bool
}

// New creates a scheduler in loc. reminderSpec is a standard five-field
// cron expression; an empty spec disables the reminder.
func New(logger *zap.Logger, reminderSpec string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger.Named("schedule"),
		now:     func() time.Time { return time.Now().In(loc) },
		eventCh: make(chan tea.Msg, 8),
		jobs:    make(map[string]cron.EntryID),
	}

	id, err := s.cron.AddFunc(rolloverSpec, s.rollover)
	if err != nil {
		return nil, fmt.Errorf("scheduling rollover: %w", err)
	}
	s.jobs["rollover"] = id
	if reminderSpec != "" {
		id, err := s.cron.AddFunc(reminderSpec, s.remind)
		if err != nil {
			return nil, fmt.Errorf("scheduling reminder %q: %w", reminderSpec, err)
		}
		s.jobs["reminder"] = id
	}
	return s, nil
}

// Start launches the cron runner and returns a command that waits for
// the first job event.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	s.cron.Start()
	for name, next := range s.Next() {
		s.logger.Info("job scheduled", zap.String("job", name), zap.Time("next", next))
	}
	return s.WaitForNext()
}

// Stop halts the runner and waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Wait blocks until ctx is done, then stops the scheduler. Run it
// alongside the UI so a signal or an exiting program shuts jobs down.
func (s *Scheduler) Wait(ctx context.Context) {
	<-ctx.Done()
	s.Stop()
}

// Next returns when each job fires next, keyed by job name.
func (s *Scheduler) Next() map[string]time.Time {
	next := make(map[string]time.Time, len(s.jobs))
	for name, id := range s.jobs {
		next[name] = s.cron.Entry(id).Next
	}
	return next
}

// WaitForNext returns a tea.Cmd that waits for the next job event. The
// receiver must call it again after handling each event.
func (s *Scheduler) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-s.eventCh
		if !ok {
			return nil
		}
		return msg
	}
}

func (s *Scheduler) rollover() {
	date := model.FormatDate(s.now())
	s.logger.Info("date rollover", zap.String("date", date))
	s.send(RolloverMsg{Date: date})
}

func (s *Scheduler) remind() {
	date := model.FormatDate(s.now())
	s.logger.Debug("daily reminder", zap.String("date", date))
	s.send(ReminderMsg{Date: date})
}

// send delivers msg without blocking the cron goroutine.
func (s *Scheduler) send(msg tea.Msg) {
	select {
	case s.eventCh <- msg:
	default:
		s.logger.Warn("dropping schedule event, receiver is behind")
	}
}

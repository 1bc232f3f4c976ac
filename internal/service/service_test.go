package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/store"
	"github.com/nhle/dayboard/tests/testutil"
)

// Wednesday 2025-03-12, mid-morning local time.
var now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

func newTestService(t *testing.T) (*service.Service, *store.SQLiteStore) {
	t.Helper()
	st := testutil.NewTestStore(t)
	clock := func() time.Time { return now }
	return service.New(st, zap.NewNop(), service.WithClock(clock)), st
}

func day(offset int) string {
	return model.FormatDate(now.AddDate(0, 0, offset))
}

func TestAddDefaultsToToday(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	todo, err := svc.Todos().Add(ctx, model.TodoInput{Title: "stand-up"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", todo.Date)

	today, err := svc.Todos().GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{todo}, today)
}

func TestToggleAndMove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	todo, err := svc.Todos().Add(ctx, model.TodoInput{Title: "review", Date: day(-2)})
	require.NoError(t, err)

	toggled, err := svc.Todos().Toggle(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, toggled.Status)
	toggled, err = svc.Todos().Toggle(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, toggled.Status)

	moved, err := svc.Todos().MoveToToday(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", moved.Date)

	moved, err = svc.Todos().MoveToTomorrow(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-13", moved.Date)

	_, err = svc.Todos().Toggle(ctx, 404)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestResultAcknowledgements(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	todo, err := svc.Todos().Add(ctx, model.TodoInput{Title: "x"})
	require.NoError(t, err)

	res, err := svc.Todos().UpdateStatus(ctx, todo.ID, model.StatusDone)
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = svc.Todos().Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = svc.Todos().Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)

	note, err := svc.Notes().Add(ctx, "remember")
	require.NoError(t, err)
	res, err = svc.Notes().Update(ctx, note.ID, "remembered")
	require.NoError(t, err)
	assert.True(t, res.Success)
	res, err = svc.Notes().Delete(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = svc.Notes().Update(ctx, note.ID, "gone")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteOnboardingIsRetrySafe(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	need, err := svc.User().NeedsOnboarding(ctx)
	require.NoError(t, err)
	assert.True(t, need)

	// A crash after create but before the flag is set leaves this state.
	created, err := svc.User().Create(ctx, model.UserInput{Name: "Sam"})
	require.NoError(t, err)
	need, err = svc.User().NeedsOnboarding(ctx)
	require.NoError(t, err)
	assert.True(t, need)

	u, err := svc.User().CompleteOnboarding(ctx, model.UserInput{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.True(t, u.OnboardingCompleted)
	require.NotNil(t, u.Email)

	again, err := svc.User().CompleteOnboarding(ctx, model.UserInput{Name: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	require.NotNil(t, again.Email, "blank email leaves the stored one alone")

	first, err := st.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)

	need, err = svc.User().NeedsOnboarding(ctx)
	require.NoError(t, err)
	assert.False(t, need)
}

func TestCompleteOnboardingFromScratch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.User().CompleteOnboarding(ctx, model.UserInput{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.True(t, u.OnboardingCompleted)
	assert.Nil(t, u.Email)

	_, err = svc.User().CompleteOnboarding(context.Background(), model.UserInput{})
	require.NoError(t, err, "existing user needs no name")

	exists, err := svc.User().Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCompleteOnboardingRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.User().CompleteOnboarding(context.Background(), model.UserInput{Name: " "})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestPomodoroHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	start := now.Add(-30 * time.Minute)
	_, err := svc.Pomodoro().Record(ctx, model.PomodoroSession{
		Kind:        model.SessionWork,
		DurationSec: 1500,
		StartedAt:   start,
		EndedAt:     start.Add(25 * time.Minute),
	})
	require.NoError(t, err)

	sessions, err := svc.Pomodoro().Today(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	n, err := svc.Pomodoro().CountToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWindowsFromConfig(t *testing.T) {
	w := service.WindowsFromConfig(model.InsightConfig{ImportantDays: 5})
	assert.Equal(t, service.Windows{ImportantDays: 5, OverdueDays: 7, LookbackDays: 365}, w)
	assert.Equal(t, insight.DefaultImportantDays, service.DefaultWindows().ImportantDays)
}

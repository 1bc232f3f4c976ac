package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
)

func TestDashboard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	add := func(title string, offset int, status model.Status, priority model.Priority) {
		t.Helper()
		_, err := svc.Todos().Add(ctx, model.TodoInput{
			Title: title, Date: day(offset), Status: status, Priority: priority,
		})
		require.NoError(t, err)
	}

	add("today done", 0, model.StatusDone, model.PriorityLow)
	add("today open", 0, model.StatusPending, model.PriorityLow)
	add("soon", 2, model.StatusPending, model.PriorityHigh)
	add("soon done", 2, model.StatusDone, model.PriorityHigh)
	add("far", 5, model.StatusPending, model.PriorityHigh)
	add("late", -3, model.StatusPending, model.PriorityLow)
	add("ancient", -10, model.StatusPending, model.PriorityLow)
	add("last year", -400, model.StatusDone, model.PriorityLow)

	_, err := svc.Notes().Add(ctx, "note")
	require.NoError(t, err)

	b, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-12", b.Date)
	assert.Len(t, b.Today, 2)
	assert.Equal(t, insight.Progress{Done: 1, Total: 2}, b.Progress)

	require.Len(t, b.Important, 1)
	assert.Equal(t, "soon", b.Important[0].Title)
	require.Len(t, b.Overdue, 1)
	assert.Equal(t, "late", b.Overdue[0].Title)

	assert.Len(t, b.Calendar.Days(), 365)
	assert.Len(t, b.Months, len(b.Calendar.Weeks))
	assert.Equal(t, insight.Position{Score: 0, Tier: insight.TierNone}, b.Position)
	assert.Len(t, b.Notes, 1)
	assert.Nil(t, b.User)
	assert.Zero(t, b.Pomodoros)

	// Only the in-window completion feeds the heatmap.
	days := b.Calendar.Days()
	assert.Equal(t, 1, days[len(days)-1].Completed)
}

func TestDashboardIncludesUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.User().CompleteOnboarding(ctx, model.UserInput{Name: "Sam"})
	require.NoError(t, err)

	b, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, b.User)
	assert.Equal(t, "Sam", b.User.Name)
}

func TestStandaloneClassifiers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Todos().Add(ctx, model.TodoInput{
		Title: "deadline", Date: day(1), Priority: model.PriorityHigh,
	})
	require.NoError(t, err)
	_, err = svc.Todos().Add(ctx, model.TodoInput{Title: "missed", Date: day(-1)})
	require.NoError(t, err)

	important, err := svc.Important(ctx)
	require.NoError(t, err)
	assert.Len(t, important, 1)

	overdue, err := svc.Overdue(ctx)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	pos, err := svc.Position(ctx)
	require.NoError(t, err)
	assert.Equal(t, insight.TierNone, pos.Tier)
}

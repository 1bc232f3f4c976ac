package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/dayboard/internal/model"
)

var today = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

func dayOffset(n int) string {
	return model.FormatDate(today.AddDate(0, 0, n))
}

func todo(title string, offset int, status model.Status, priority model.Priority) model.Todo {
	return model.Todo{Title: title, Status: status, Priority: priority, Date: dayOffset(offset)}
}

func titles(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Title)
	}
	return out
}

func TestImportant(t *testing.T) {
	todos := []model.Todo{
		todo("in window", 2, model.StatusPending, model.PriorityHigh),
		todo("done", 2, model.StatusDone, model.PriorityHigh),
		todo("too far", 5, model.StatusPending, model.PriorityHigh),
		todo("today", 0, model.StatusPending, model.PriorityHigh),
		todo("medium", 1, model.StatusPending, model.PriorityMedium),
		todo("edge", 3, model.StatusPending, model.PriorityHigh),
	}

	got := Important(todos, today, DefaultImportantDays)
	assert.Equal(t, []string{"in window", "edge"}, titles(got))
}

func TestOverdue(t *testing.T) {
	todos := []model.Todo{
		todo("three ago", -3, model.StatusPending, model.PriorityLow),
		todo("today", 0, model.StatusPending, model.PriorityLow),
		todo("ten ago", -10, model.StatusPending, model.PriorityLow),
		todo("done", -2, model.StatusDone, model.PriorityHigh),
		todo("edge", -7, model.StatusPending, model.PriorityMedium),
		todo("yesterday", -1, model.StatusPending, model.PriorityHigh),
	}

	got := Overdue(todos, today, DefaultOverdueDays)
	assert.Equal(t, []string{"three ago", "edge", "yesterday"}, titles(got))
}

func TestWindows(t *testing.T) {
	start, end := ImportantWindow(today, 3)
	assert.Equal(t, "2025-03-13", start)
	assert.Equal(t, "2025-03-15", end)

	start, end = OverdueWindow(today, 7)
	assert.Equal(t, "2025-03-05", start)
	assert.Equal(t, "2025-03-11", end)
}

func TestClassifyEmptyInput(t *testing.T) {
	assert.Empty(t, Important(nil, today, 3))
	assert.NotNil(t, Overdue(nil, today, 7))
}

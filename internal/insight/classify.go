package insight

import (
	"time"

	"github.com/nhle/dayboard/internal/model"
)

// Default classification windows in days.
const (
	DefaultImportantDays = 3
	DefaultOverdueDays   = 7
)

// ImportantWindow returns [today+1, today+days], the range the important
// list is drawn from.
func ImportantWindow(today time.Time, days int) (start, end string) {
	return model.FormatDate(today.AddDate(0, 0, 1)), model.FormatDate(today.AddDate(0, 0, days))
}

// OverdueWindow returns [today-days, today-1].
func OverdueWindow(today time.Time, days int) (start, end string) {
	return model.FormatDate(today.AddDate(0, 0, -days)), model.FormatDate(today.AddDate(0, 0, -1))
}

// Important keeps the high priority, unfinished todos due in the next
// days days. Today itself is not included.
func Important(todos []model.Todo, today time.Time, days int) []model.Todo {
	start, end := ImportantWindow(today, days)
	out := []model.Todo{}
	for _, t := range todos {
		if t.Date < start || t.Date > end {
			continue
		}
		if t.Priority == model.PriorityHigh && !t.Done() {
			out = append(out, t)
		}
	}
	return out
}

// Overdue keeps unfinished todos dated in the last days days, strictly
// before today.
func Overdue(todos []model.Todo, today time.Time, days int) []model.Todo {
	start, end := OverdueWindow(today, days)
	todayStr := model.FormatDate(today)
	out := []model.Todo{}
	for _, t := range todos {
		if t.Date < start || t.Date > end || t.Date >= todayStr {
			continue
		}
		if !t.Done() {
			out = append(out, t)
		}
	}
	return out
}

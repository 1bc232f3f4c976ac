package insight

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/nhle/dayboard/internal/model"
)

// DefaultLookbackDays is the span of the activity calendar.
const DefaultLookbackDays = 365

// Day is one cell of the activity calendar.
type Day struct {
	Date      string
	Completed int
	Level     Level
}

// Week is one calendar column, Sunday first. The first and last columns
// may hold fewer than seven days.
type Week struct {
	Days []Day
}

// FirstDate returns the date of the earliest day in the week.
func (w Week) FirstDate() string {
	if len(w.Days) == 0 {
		return ""
	}
	return w.Days[0].Date
}

// Calendar is the heatmap grid for a window of days ending on End.
type Calendar struct {
	Start      string
	End        string
	Weeks      []Week
	Thresholds [5]float64
}

// Days flattens the grid back into chronological order.
func (c Calendar) Days() []Day {
	var days []Day
	for _, w := range c.Weeks {
		days = append(days, w.Days...)
	}
	return days
}

// LookbackWindow returns the inclusive date range covering days days
// ending on today.
func LookbackWindow(today time.Time, days int) (start, end string) {
	days = max(1, days)
	day := now.With(today).BeginningOfDay()
	return model.FormatDate(day.AddDate(0, 0, -(days - 1))), model.FormatDate(day)
}

// BuildCalendar lays out days days ending on today as Sunday-first week
// columns. Counts and levels come from the done todos in todos.
func BuildCalendar(todos []model.Todo, today time.Time, days int) Calendar {
	start, end := LookbackWindow(today, days)
	counts := CompletedByDate(todos)
	thresholds := Thresholds(todos)

	cfg := &now.Config{WeekStartDay: time.Sunday}
	first, _ := model.ParseDate(start)
	last, _ := model.ParseDate(end)

	cal := Calendar{Start: start, End: end, Thresholds: thresholds}
	var week Week
	weekStart := cfg.With(first).BeginningOfWeek()
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if ws := cfg.With(d).BeginningOfWeek(); !ws.Equal(weekStart) {
			cal.Weeks = append(cal.Weeks, week)
			week = Week{}
			weekStart = ws
		}
		date := model.FormatDate(d)
		week.Days = append(week.Days, Day{
			Date:      date,
			Completed: counts[date],
			Level:     Bucket(counts[date], thresholds),
		})
	}
	if len(week.Days) > 0 {
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

// MonthLabels returns one label per week: the abbreviated month of the
// week's first day, or "" when that month was already labeled by the
// previous emitted label.
func MonthLabels(weeks []Week) []string {
	labels := make([]string, len(weeks))
	prev := ""
	for i, w := range weeks {
		d, err := model.ParseDate(w.FirstDate())
		if err != nil {
			continue
		}
		label := d.Format("Jan")
		if label != prev {
			labels[i] = label
			prev = label
		}
	}
	return labels
}

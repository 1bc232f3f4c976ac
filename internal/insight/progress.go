package insight

import (
	"fmt"
	"time"

	"github.com/nhle/dayboard/internal/model"
)

// Progress is the done/total ratio of a set of todos.
type Progress struct {
	Done  int
	Total int
}

// DailyProgress counts finished todos in todos.
func DailyProgress(todos []model.Todo) Progress {
	p := Progress{Total: len(todos)}
	for _, t := range todos {
		if t.Done() {
			p.Done++
		}
	}
	return p
}

// Ratio returns Done/Total in [0, 1]; an empty day is 0.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// Percent returns the ratio as a whole percentage, rounded down.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Done * 100 / p.Total
}

// RelativeDay describes date relative to today in words.
func RelativeDay(date string, today time.Time) string {
	d, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	t, _ := model.ParseDate(model.FormatDate(today))

	// Round so DST transitions do not shift the day count.
	diff := int(d.Sub(t).Round(24*time.Hour).Hours() / 24)
	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff > 1:
		return fmt.Sprintf("In %d days", diff)
	default:
		return fmt.Sprintf("%d days ago", -diff)
	}
}

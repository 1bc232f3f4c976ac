// Package insight derives the dashboard view model from todo collections:
// heatmap thresholds, calendar grid, important/overdue lists and the
// position score. Every function here is pure.
package insight

import "github.com/nhle/dayboard/internal/model"

// Level is a heatmap color bucket.
type Level int

// Heatmap levels, from no activity to the top of the user's own range.
const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelVeryHigh
	LevelMax
)

// thresholdFactors scale the average completions per active day into the
// five ascending bucket bounds.
var thresholdFactors = [5]float64{0.5, 1.0, 1.5, 2.0, 2.5}

// CompletedByDate counts done todos per date.
func CompletedByDate(todos []model.Todo) map[string]int {
	counts := make(map[string]int)
	for _, t := range todos {
		if t.Done() {
			counts[t.Date]++
		}
	}
	return counts
}

// Thresholds returns the bucket bounds relative to the average number of
// completions on days that had any. With no completions at all the
// average is zero and every bound is zero.
func Thresholds(todos []model.Todo) [5]float64 {
	counts := CompletedByDate(todos)

	total := 0
	for _, c := range counts {
		total += c
	}
	activeDays := max(1, len(counts))
	avg := float64(total) / float64(activeDays)

	var th [5]float64
	for i, f := range thresholdFactors {
		th[i] = avg * f
	}
	return th
}

// Bucket assigns a day's completion count to a Level. Zero is always
// LevelNone; anything not below the last threshold is LevelMax.
func Bucket(count int, thresholds [5]float64) Level {
	if count <= 0 {
		return LevelNone
	}
	c := float64(count)
	for i, th := range thresholds {
		if c < th {
			return Level(i + 1)
		}
	}
	return LevelMax
}

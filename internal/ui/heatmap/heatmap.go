// Package heatmap renders the activity calendar as a grid of colored
// cells, one column per week and one row per weekday.
package heatmap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/theme"
)

const (
	cell      = "■"
	cellWidth = 2
	// gutter is the weekday label column.
	gutter = 4
)

var weekdayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

// Render draws the calendar in at most width columns. When the window is
// wider than the terminal, the most recent weeks are kept.
func Render(cal insight.Calendar, months []string, width int) string {
	weeks := cal.Weeks
	// One spare column lets a 3-rune month label sit on the newest week.
	if fit := (width - gutter - 1) / cellWidth; fit > 0 && len(weeks) > fit {
		drop := len(weeks) - fit
		weeks = weeks[drop:]
		if len(months) >= drop {
			months = months[drop:]
		}
	}
	if len(weeks) == 0 {
		return theme.HelpStyle.Render("No activity yet.")
	}

	var grid [7]strings.Builder
	for i := range grid {
		grid[i].WriteString(fmt.Sprintf("%-*s", gutter, weekdayLabels[i]))
	}

	for _, w := range weeks {
		filled := [7]bool{}
		for _, d := range w.Days {
			row := weekday(d.Date)
			if row < 0 {
				continue
			}
			filled[row] = true
			grid[row].WriteString(theme.HeatmapStyle(d.Level).Render(cell) + " ")
		}
		for row := range filled {
			if !filled[row] {
				grid[row].WriteString(strings.Repeat(" ", cellWidth))
			}
		}
	}

	lines := []string{monthRow(months, len(weeks))}
	for i := range grid {
		lines = append(lines, grid[i].String())
	}
	lines = append(lines, legend())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// monthRow places each month label above the week it starts in.
func monthRow(months []string, weeks int) string {
	size := gutter + weeks*cellWidth
	for i := 0; i < weeks && i < len(months); i++ {
		size = max(size, gutter+i*cellWidth+len([]rune(months[i])))
	}
	row := []rune(strings.Repeat(" ", size))
	for i := 0; i < weeks && i < len(months); i++ {
		copy(row[gutter+i*cellWidth:], []rune(months[i]))
	}
	return theme.HelpStyle.Render(strings.TrimRight(string(row), " "))
}

func legend() string {
	var b strings.Builder
	b.WriteString(theme.HelpStyle.Render("Less "))
	for l := insight.LevelNone; l <= insight.LevelMax; l++ {
		b.WriteString(theme.HeatmapStyle(l).Render(cell))
	}
	b.WriteString(theme.HelpStyle.Render(" More"))
	return b.String()
}

// weekday returns the Sunday-first row for date, or -1 if unparseable.
func weekday(date string) int {
	d, err := model.ParseDate(date)
	if err != nil {
		return -1
	}
	return int(d.Weekday())
}

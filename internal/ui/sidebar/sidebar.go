// Package sidebar renders the right-hand dashboard column: today's
// progress, position, upcoming important todos and overdue todos.
package sidebar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/service"
	"github.com/nhle/dayboard/internal/theme"
)

// maxListed caps each todo section.
const maxListed = 5

// Render draws the sidebar for board at width columns.
func Render(board service.Board, width int, today time.Time) string {
	inner := max(10, width-4)

	sections := []string{
		progressSection(board, inner),
		positionSection(board.Position),
		todoSection("Important", board.Important, today, inner),
		todoSection("Overdue", board.Overdue, today, inner),
	}
	return theme.PanelStyle.Width(width - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func progressSection(board service.Board, width int) string {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	p := board.Progress
	summary := fmt.Sprintf("%d/%d done (%d%%)", p.Done, p.Total, p.Percent())
	if board.Pomodoros > 0 {
		summary += fmt.Sprintf(" · %d 🍅", board.Pomodoros)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.SectionTitleStyle.Render("Today"),
		bar.ViewAs(p.Ratio()),
		theme.HelpStyle.Render(summary),
		"",
	)
}

func positionSection(pos insight.Position) string {
	line := fmt.Sprintf("Score %d", pos.Score)
	if pos.Tier != insight.TierNone {
		line += " " + theme.TierStyle(pos.Tier).Render(string(pos.Tier))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.SectionTitleStyle.Render("Position"),
		line,
		"",
	)
}

func todoSection(title string, todos []model.Todo, today time.Time, width int) string {
	lines := []string{theme.SectionTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(todos)))}
	if len(todos) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Nothing here."))
	}
	for i, t := range todos {
		if i == maxListed {
			lines = append(lines, theme.HelpStyle.Render(fmt.Sprintf("+%d more", len(todos)-maxListed)))
			break
		}
		when := insight.RelativeDay(t.Date, today)
		name := truncate(t.Title, width-lipgloss.Width(when)-3)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			theme.PriorityStyle(t.Priority).Render("•"),
			name,
			theme.HelpStyle.Render(when),
		))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width < 2 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

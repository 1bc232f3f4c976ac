package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/theme"
)

// Layout splits the terminal into header, main column, side column and
// status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(0, l.Height-l.HeaderHeight-l.StatusBarHeight)
}

// SideWidth returns the width of the right-hand column. Narrow terminals
// get a single column.
func (l Layout) SideWidth() int {
	if l.Width < 80 {
		return 0
	}
	return min(44, l.Width/3)
}

// MainWidth returns the width of the left-hand column.
func (l Layout) MainWidth() int {
	return l.Width - l.SideWidth()
}

// RenderHeader renders the top header bar with a title on the left and
// status text on the right.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := max(0, l.Width-
		lipgloss.Width(titleRendered)-
		lipgloss.Width(statusRendered))

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := max(0, l.Width-lipgloss.Width(rendered))

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderColumns places main and side next to each other, or main alone
// when there is no room for the side column.
func (l Layout) RenderColumns(main, side string) string {
	if l.SideWidth() == 0 || side == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, side)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

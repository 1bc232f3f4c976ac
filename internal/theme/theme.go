package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/insight"
	"github.com/nhle/dayboard/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// heatmapColors are the six activity levels, none to max.
var heatmapColors = [6]lipgloss.AdaptiveColor{
	{Dark: "#2D333B", Light: "#EBEDF0"},
	{Dark: "#0E4429", Light: "#C6E48B"},
	{Dark: "#006D32", Light: "#9BE9A8"},
	{Dark: "#26A641", Light: "#7BC96F"},
	{Dark: "#39D353", Light: "#40C463"},
	{Dark: "#7CFC8A", Light: "#216E39"},
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// SectionTitleStyle labels a panel.
var SectionTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a dashboard panel.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// FocusedPanelStyle marks the panel that receives keys.
var FocusedPanelStyle = PanelStyle.
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DoneItemStyle dims and strikes through finished todos.
var DoneItemStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle renders error messages in the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// StatusStyle returns a color-coded style for a todo status.
func StatusStyle(status model.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.StatusDone:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for a todo priority.
func PriorityStyle(priority model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// HeatmapStyle returns the cell style for an activity level.
func HeatmapStyle(level insight.Level) lipgloss.Style {
	if level < insight.LevelNone || level > insight.LevelMax {
		level = insight.LevelNone
	}
	return lipgloss.NewStyle().Foreground(heatmapColors[level])
}

// TierStyle returns the badge style for a position tier.
func TierStyle(tier insight.Tier) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch tier {
	case insight.TierGold:
		return base.Foreground(ColorYellow)
	case insight.TierSilver:
		return base.Foreground(ColorWhite)
	case insight.TierBronze:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorGray)
	}
}

// PhaseStyle returns the timer color for a pomodoro phase.
func PhaseStyle(phase model.SessionKind) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch phase {
	case model.SessionWork:
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGreen)
	}
}

package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dayboard/internal/keys"
	"github.com/nhle/dayboard/internal/theme"
)

// Command describes one command palette entry.
type Command struct {
	Usage string
	Desc  string
}

// Commands lists the palette commands in display order.
var Commands = []Command{
	{"add [title]", "new todo, opens the form without a title"},
	{"note <text>", "append a note"},
	{"goto <YYYY-MM-DD>", "show another day"},
	{"today / tomorrow / yesterday", "jump relative to today"},
	{"work", "enter work mode"},
	{"refresh", "reload the dashboard"},
	{"help", "show this screen"},
	{"quit", "exit"},
}

type section struct {
	title    string
	bindings []key.Binding
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{keys: k, help: help.New()}
	m.SetSize(width, height)
	return m
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) sections() []section {
	k := m.keys
	return []section{
		{"Dashboard", []key.Binding{k.Up, k.Down, k.NextPane, k.PrevDay, k.NextDay, k.Today}},
		{"Todos", []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Tomorrow, k.MoveHere}},
		{"Notes", []key.Binding{k.Add, k.Edit, k.Delete}},
		{"Work mode", []key.Binding{k.WorkMode, k.Timer, k.Skip, k.Reset, k.Back}},
		{"General", []key.Binding{k.Command, k.Refresh, k.Help, k.Quit}},
	}
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	blocks := []string{titleStyle.Render("Keyboard Shortcuts")}
	for _, s := range m.sections() {
		blocks = append(blocks,
			theme.SectionTitleStyle.Render(s.title),
			m.help.FullHelpView([][]key.Binding{s.bindings}),
			"",
		)
	}
	blocks = append(blocks, theme.SectionTitleStyle.Render("Commands"), m.commandTable())

	return theme.PanelStyle.
		Width(max(0, m.width-4)).
		Height(max(0, m.height-4)).
		Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (m Model) commandTable() string {
	usage := 0
	for _, c := range Commands {
		usage = max(usage, lipgloss.Width(c.Usage))
	}
	var b strings.Builder
	for i, c := range Commands {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, ":%-*s  %s", usage, c.Usage, theme.HelpStyle.Render(c.Desc))
	}
	return b.String()
}

// ShortView renders the one-line hint for the status bar.
func (m Model) ShortView() string {
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(0, width-4)
}

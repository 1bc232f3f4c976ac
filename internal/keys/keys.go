package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down     key.Binding
	Up       key.Binding
	NextPane key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Todo actions
	Add      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Tomorrow key.Binding
	MoveHere key.Binding

	// Work mode
	WorkMode key.Binding
	Timer    key.Binding
	Skip     key.Binding
	Reset    key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "jump to today"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Add: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Tomorrow: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move to tomorrow"),
		),
		MoveHere: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "move to today"),
		),
		WorkMode: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "work mode"),
		),
		Timer: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/pause timer"),
		),
		Skip: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "skip phase"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset phase"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Add, k.Toggle,
		k.WorkMode, k.Help, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane, k.PrevDay, k.NextDay, k.Today},
		{k.Add, k.Edit, k.Toggle, k.Delete, k.Tomorrow, k.MoveHere},
		{k.WorkMode, k.Timer, k.Skip, k.Reset},
		{k.Command, k.Refresh, k.Help, k.Back, k.Quit},
	}
}

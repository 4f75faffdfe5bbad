package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit  key.Binding
	Help  key.Binding
	Reset key.Binding

	// Mouse gestures, listed in the full help only
	Default key.Binding
	Fine    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reset, k.Quit, k.Help},
		{k.Default, k.Fine},
	}
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Default: key.NewBinding(
		key.WithKeys("shift+click"),
		key.WithHelp("shift+click", "restore default"),
	),
	Fine: key.NewBinding(
		key.WithKeys("ctrl+drag"),
		key.WithHelp("ctrl+drag/wheel", "fine adjust"),
	),
}

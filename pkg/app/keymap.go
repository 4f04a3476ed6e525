package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// applicationKeyMap defines a set of keybindings. To work for help it must
// satisfy key.Map.
type applicationKeyMap struct {
	SwitchPane key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding

	choose key.Binding
	create key.Binding
	rename key.Binding
	remove key.Binding
	add    key.Binding

	confirm key.Binding
	submit  key.Binding
	cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k applicationKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k applicationKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.choose, k.create, k.rename, k.remove, k.add},
		{k.SwitchPane, k.Back, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns a default set of keybindings.
func DefaultKeyMap() applicationKeyMap {
	return applicationKeyMap{
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to themes"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new theme"),
		),
		rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename theme"),
		),
		remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add document"),
		),

		confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

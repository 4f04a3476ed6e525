package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

func newThemeDelegate(keys applicationKeyMap) list.DefaultDelegate {
	return newDelegate(
		[]key.Binding{keys.choose, keys.create, keys.rename, keys.remove},
		[]key.Binding{keys.SwitchPane, keys.Help},
	)
}

func newDocumentDelegate(keys applicationKeyMap) list.DefaultDelegate {
	return newDelegate(
		[]key.Binding{keys.choose, keys.add, keys.remove},
		[]key.Binding{keys.SwitchPane, keys.Back, keys.Help},
	)
}

func newDelegate(actions, navigation []key.Binding) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.ShortHelpFunc = func() []key.Binding {
		return actions
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{actions, navigation}
	}

	return d
}

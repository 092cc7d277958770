package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard bindings shown in the help line.
type keyMap struct {
	More key.Binding
	Less key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		More: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more columns")),
		Less: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer columns")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.More, k.Less, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

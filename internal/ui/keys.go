package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	More   key.Binding
	Less   key.Binding
	Rescan key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		More: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+", "show more"),
		),
		Less: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-", "show fewer"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "rescan"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c", "cancel scan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.More, k.Less, k.Rescan, k.Cancel, k.Quit}
}

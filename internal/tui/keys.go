package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application key bindings
type KeyMap struct {
	Submit     key.Binding
	Clear      key.Binding
	Focus      key.Binding
	Filter     key.Binding
	Refresh    key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	GrowPage   key.Binding
	ShrinkPage key.Binding
	Quit       key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Focus: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "edit query"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter page"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "["),
		key.WithHelp("←/[", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "]"),
		key.WithHelp("→/]", "next page"),
	),
	GrowPage: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more per page"),
	),
	ShrinkPage: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer per page"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

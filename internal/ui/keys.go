package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds physical keys to the logical commands of the session.
// The state machine itself only sees the logical side.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	Detail     key.Binding
	Kill       key.Binding
	ManualKill key.Binding
	Refresh    key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	SigTerm    key.Binding
	SigKill    key.Binding
	CycleSig   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Kill: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "kill"),
	),
	ManualKill: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "kill by pid"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	SigTerm: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "SIGTERM"),
	),
	SigKill: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "SIGKILL"),
	),
	CycleSig: key.NewBinding(
		key.WithKeys("up", "down"),
		key.WithHelp("↑/↓", "choose signal"),
	),
}

package tui

import (
	"packetsniffer/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the keyboard shortcuts of the session.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding

	// Navigate only exists to render Up and Down as one help entry.
	Navigate key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "select"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Enter, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Enter, k.Quit}}
}

// event translates a terminal key into a session event. Terminals only
// report presses, so every event is a KeyPress.
func (k KeyMap) event(msg tea.KeyMsg) session.KeyEvent {
	ev := session.KeyEvent{Kind: session.KeyPress, Text: msg.String()}

	switch {
	case key.Matches(msg, k.Quit):
		ev.Key = session.KeyQuit
	case key.Matches(msg, k.Up):
		ev.Key = session.KeyUp
	case key.Matches(msg, k.Down):
		ev.Key = session.KeyDown
	case key.Matches(msg, k.Enter):
		ev.Key = session.KeyEnter
	default:
		ev.Key = session.KeyOther
	}
	return ev
}

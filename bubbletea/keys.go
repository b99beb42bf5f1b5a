package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer keybindings.
type KeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Insert      key.Binding
	Leave       key.Binding
	Submit      key.Binding
	Reasoning   key.Binding
	Copy        key.Binding
	NextCode    key.Binding
	PrevCode    key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/k", "select"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Reasoning: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "reasoning"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy code"),
		),
		NextCode: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[/]", "code block"),
		),
		PrevCode: key.NewBinding(
			key.WithKeys("["),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "scroll table"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Insert, k.Reasoning, k.Copy, k.NextCode, k.ScrollLeft, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Leave, k.Submit}}
}

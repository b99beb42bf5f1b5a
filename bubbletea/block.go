package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// MessageBlock is a renderable element in the conversation.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// ToggleMsg tells a collapsible block to toggle its collapsed state.
// Sent by the root model when the user presses the toggle key on a focused block.
type ToggleMsg struct{}

// CopyMsg asks a bubble to copy its focused code block to the clipboard.
type CopyMsg struct{}

// FocusCodeMsg moves a bubble's code focus by Delta blocks, wrapping around.
type FocusCodeMsg struct {
	Delta int
}

// ScrollTableMsg moves a bubble's table window by Delta cells.
type ScrollTableMsg struct {
	Delta int
}

// CopiedMsg reports that code block Index of bubble ID reached the clipboard.
type CopiedMsg struct {
	ID    int
	Index int
}

// CopyFailedMsg reports that copying code block Index of bubble ID failed.
type CopyFailedMsg struct {
	ID    int
	Index int
	Err   error
}

// copyResetMsg clears the copied indicator set under tag.
type copyResetMsg struct {
	id    int
	index int
	tag   int
}

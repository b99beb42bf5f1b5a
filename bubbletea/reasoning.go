package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmsg"
	"github.com/fwojciec/chatmsg/goldmark"
)

var _ MessageBlock = (*ReasoningBlock)(nil)

// ReasoningBlock renders a message's reasoning text with a collapsible
// toggle. When the owning bubble is not expanded only the preview is shown.
type ReasoningBlock struct {
	text      string
	limit     int
	collapsed bool
	expanded  bool
	theme     chatmsg.Theme
	styles    Styles
}

// NewReasoningBlock creates a ReasoningBlock that starts collapsed. Previews
// are cut at limit characters.
func NewReasoningBlock(text string, limit int, theme chatmsg.Theme, styles Styles) *ReasoningBlock {
	return &ReasoningBlock{
		text:      text,
		limit:     limit,
		collapsed: true,
		theme:     theme,
		styles:    styles,
	}
}

// SetExpanded chooses between the full text and the preview.
func (b *ReasoningBlock) SetExpanded(expanded bool) {
	b.expanded = expanded
}

// Collapsed reports whether the reasoning text is hidden.
func (b *ReasoningBlock) Collapsed() bool { return b.collapsed }

func (b *ReasoningBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ReasoningBlock) View(width int) string {
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Reasoning.Render(indicator + " Reasoning Process")
	if b.collapsed {
		return header
	}
	text := b.text
	if !b.expanded {
		text = chatmsg.Truncate(text, b.limit)
	}
	content := b.styles.Reasoning.Render(goldmark.Render(text, width, b.theme))
	return header + "\n" + content
}

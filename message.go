package chatmsg

import "strings"

// Message is a caller-owned chat message consumed read-only by the bubble.
type Message struct {
	Content   Content
	IsUser    bool
	Reasoning string
	Model     string
}

// Text returns the extracted text of the message content.
func (m Message) Text() string { return ExtractText(m.Content) }

// Images returns the extracted image parts of the message content.
func (m Message) Images() []ImageContent { return ExtractImages(m.Content) }

// ModelLabel returns the label shown above a model-generated message, or ""
// when the message is from the user or names no model.
//
// Router names such as "Auto Router (gpt-4o)" are shown verbatim, the same
// as every other name.
func ModelLabel(m Message) string {
	if m.IsUser || m.Model == "" {
		return ""
	}
	if strings.Contains(m.Model, "Auto Router") && strings.Contains(m.Model, "(") {
		return m.Model
	}
	return m.Model
}

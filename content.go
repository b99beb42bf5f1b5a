// Package chatmsg defines the content model of a chat message bubble and
// the pure rules that decide what the bubble shows: text and image
// extraction, preview truncation, and the expanded-state derivation.
package chatmsg

import "strings"

// ContentPart is a sealed interface representing one part of structured
// message content. The unexported marker method prevents external
// implementations.
type ContentPart interface {
	contentPart()
}

// TextContent is a part with wire type "text".
type TextContent struct {
	Text string
}

func (TextContent) contentPart() {}

// ImageContent is a part with wire type "image_url".
type ImageContent struct {
	URL string
}

func (ImageContent) contentPart() {}

// UnknownContent is a part whose wire type is not recognized. It is kept so
// decoding never rejects newer part kinds; extraction ignores it.
type UnknownContent struct {
	Type string
}

func (UnknownContent) contentPart() {}

// Interface compliance checks.
var (
	_ ContentPart = TextContent{}
	_ ContentPart = ImageContent{}
	_ ContentPart = UnknownContent{}
)

// Content is either a plain string or an ordered sequence of parts.
// The zero value is empty plain content.
type Content struct {
	text       string
	parts      []ContentPart
	structured bool
}

// PlainContent returns content holding a plain string.
func PlainContent(s string) Content {
	return Content{text: s}
}

// PartsContent returns structured content holding parts in the given order.
func PartsContent(parts ...ContentPart) Content {
	return Content{parts: parts, structured: true}
}

// Structured reports whether c holds a sequence of parts.
func (c Content) Structured() bool { return c.structured }

// Plain returns the plain string. It is empty for structured content.
func (c Content) Plain() string { return c.text }

// Parts returns the parts of structured content, nil for plain content.
func (c Content) Parts() []ContentPart { return c.parts }

// ExtractText returns the textual portion of c. Plain content is returned
// unchanged. For structured content the text parts are joined with a single
// space in their original order; every other part kind contributes nothing.
func ExtractText(c Content) string {
	if !c.structured {
		return c.text
	}
	texts := make([]string, 0, len(c.parts))
	for _, p := range c.parts {
		if tc, ok := p.(TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}
	return strings.Join(texts, " ")
}

// ExtractImages returns the image parts of c in their original order.
// Plain content has no images.
func ExtractImages(c Content) []ImageContent {
	if !c.structured {
		return nil
	}
	var images []ImageContent
	for _, p := range c.parts {
		if ic, ok := p.(ImageContent); ok {
			images = append(images, ic)
		}
	}
	return images
}

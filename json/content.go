package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/chatmsg"
)

// contentPart is the JSON representation of a ContentPart with a type discriminator.
type contentPart struct {
	Type     string    `json:"type"`
	Text     *string   `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// DecodeContent decodes message content that is either a JSON string or an
// array of typed parts. Missing and null content decode to empty plain
// content. Parts whose type is missing or other than "text" and "image_url"
// decode to chatmsg.UnknownContent.
func DecodeContent(data json.RawMessage) (chatmsg.Content, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return chatmsg.PlainContent(""), nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return chatmsg.Content{}, fmt.Errorf("decode string content: %w", err)
		}
		return chatmsg.PlainContent(s), nil
	case '[':
		var dtos []contentPart
		if err := json.Unmarshal(data, &dtos); err != nil {
			return chatmsg.Content{}, fmt.Errorf("decode content parts: %w", err)
		}
		return chatmsg.PartsContent(unmarshalContentParts(dtos)...), nil
	default:
		return chatmsg.Content{}, fmt.Errorf("%w: expected string or array, got %.20s", chatmsg.ErrInvalidContent, data)
	}
}

// EncodeContent encodes plain content as a JSON string and structured
// content as an array of typed parts.
func EncodeContent(c chatmsg.Content) (json.RawMessage, error) {
	if !c.Structured() {
		return json.Marshal(c.Plain())
	}
	dtos := make([]contentPart, len(c.Parts()))
	for i, p := range c.Parts() {
		dto, err := marshalContentPart(p)
		if err != nil {
			return nil, fmt.Errorf("content part %d: %w", i, err)
		}
		dtos[i] = dto
	}
	return json.Marshal(dtos)
}

func marshalContentPart(p chatmsg.ContentPart) (contentPart, error) {
	switch v := p.(type) {
	case chatmsg.TextContent:
		return contentPart{Type: "text", Text: &v.Text}, nil
	case chatmsg.ImageContent:
		return contentPart{Type: "image_url", ImageURL: &imageURL{URL: v.URL}}, nil
	case chatmsg.UnknownContent:
		return contentPart{Type: v.Type}, nil
	default:
		return contentPart{}, fmt.Errorf("unknown content part type: %T", p)
	}
}

func unmarshalContentParts(dtos []contentPart) []chatmsg.ContentPart {
	result := make([]chatmsg.ContentPart, len(dtos))
	for i, dto := range dtos {
		result[i] = unmarshalContentPart(dto)
	}
	return result
}

// unmarshalContentPart never fails: a part with a missing or unrecognised
// type becomes UnknownContent so its neighbours still decode.
func unmarshalContentPart(dto contentPart) chatmsg.ContentPart {
	switch dto.Type {
	case "text":
		var text string
		if dto.Text != nil {
			text = *dto.Text
		}
		return chatmsg.TextContent{Text: text}
	case "image_url":
		var url string
		if dto.ImageURL != nil {
			url = dto.ImageURL.URL
		}
		return chatmsg.ImageContent{URL: url}
	default:
		return chatmsg.UnknownContent{Type: dto.Type}
	}
}

package chatmsg_test

import (
	"testing"

	"github.com/fwojciec/chatmsg"
	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content chatmsg.Content
		want    string
	}{
		{"zero value", chatmsg.Content{}, ""},
		{"plain string unchanged", chatmsg.PlainContent("  hello **world**\n"), "  hello **world**\n"},
		{"empty parts", chatmsg.PartsContent(), ""},
		{
			"single text part",
			chatmsg.PartsContent(chatmsg.TextContent{Text: "hi"}),
			"hi",
		},
		{
			"text parts joined with one space in order",
			chatmsg.PartsContent(
				chatmsg.TextContent{Text: "first"},
				chatmsg.TextContent{Text: "second"},
				chatmsg.TextContent{Text: "third"},
			),
			"first second third",
		},
		{
			"images and unknown kinds contribute nothing",
			chatmsg.PartsContent(
				chatmsg.ImageContent{URL: "https://example.com/a.png"},
				chatmsg.TextContent{Text: "look"},
				chatmsg.UnknownContent{Type: "input_audio"},
				chatmsg.TextContent{Text: "here"},
			),
			"look here",
		},
		{
			"only images",
			chatmsg.PartsContent(chatmsg.ImageContent{URL: "a"}, chatmsg.ImageContent{URL: "b"}),
			"",
		},
		{
			"empty text parts still take a separator",
			chatmsg.PartsContent(chatmsg.TextContent{Text: ""}, chatmsg.TextContent{Text: "x"}),
			" x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chatmsg.ExtractText(tt.content))
		})
	}
}

func TestExtractImages(t *testing.T) {
	t.Parallel()

	t.Run("plain string has no images", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, chatmsg.ExtractImages(chatmsg.PlainContent("![x](y.png)")))
	})

	t.Run("structured content keeps image order", func(t *testing.T) {
		t.Parallel()
		c := chatmsg.PartsContent(
			chatmsg.ImageContent{URL: "one"},
			chatmsg.TextContent{Text: "between"},
			chatmsg.UnknownContent{Type: "file"},
			chatmsg.ImageContent{URL: "two"},
		)
		assert.Equal(t, []chatmsg.ImageContent{{URL: "one"}, {URL: "two"}}, chatmsg.ExtractImages(c))
	})

	t.Run("no image parts", func(t *testing.T) {
		t.Parallel()
		c := chatmsg.PartsContent(chatmsg.TextContent{Text: "text"})
		assert.Empty(t, chatmsg.ExtractImages(c))
	})
}

func TestContent_Accessors(t *testing.T) {
	t.Parallel()

	plain := chatmsg.PlainContent("hi")
	assert.False(t, plain.Structured())
	assert.Equal(t, "hi", plain.Plain())
	assert.Nil(t, plain.Parts())

	parts := chatmsg.PartsContent(chatmsg.TextContent{Text: "hi"})
	assert.True(t, parts.Structured())
	assert.Empty(t, parts.Plain())
	assert.Len(t, parts.Parts(), 1)
}

func TestContentPartTypeSwitch_Exhaustive(t *testing.T) {
	t.Parallel()
	parts := []chatmsg.ContentPart{
		chatmsg.TextContent{Text: "hello"},
		chatmsg.ImageContent{URL: "https://example.com/cat.png"},
		chatmsg.UnknownContent{Type: "video"},
	}
	for _, p := range parts {
		switch p.(type) {
		case chatmsg.TextContent:
		case chatmsg.ImageContent:
		case chatmsg.UnknownContent:
		default:
			t.Fatalf("unexpected content part type: %T", p)
		}
	}
}

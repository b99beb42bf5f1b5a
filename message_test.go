package chatmsg_test

import (
	"testing"

	"github.com/fwojciec/chatmsg"
	"github.com/stretchr/testify/assert"
)

func TestMessage_TextAndImages(t *testing.T) {
	t.Parallel()
	msg := chatmsg.Message{
		Content: chatmsg.PartsContent(
			chatmsg.TextContent{Text: "what is"},
			chatmsg.ImageContent{URL: "data:image/png;base64,AAAA"},
			chatmsg.TextContent{Text: "this?"},
		),
		IsUser: true,
	}
	assert.Equal(t, "what is this?", msg.Text())
	assert.Equal(t, []chatmsg.ImageContent{{URL: "data:image/png;base64,AAAA"}}, msg.Images())
}

func TestModelLabel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msg  chatmsg.Message
		want string
	}{
		{"user message has no label", chatmsg.Message{IsUser: true, Model: "gpt-4o"}, ""},
		{"assistant without model", chatmsg.Message{}, ""},
		{"assistant with model", chatmsg.Message{Model: "claude-sonnet"}, "claude-sonnet"},
		{"router name is verbatim", chatmsg.Message{Model: "Auto Router (gpt-4o-mini)"}, "Auto Router (gpt-4o-mini)"},
		{"router name without parenthesis", chatmsg.Message{Model: "Auto Router"}, "Auto Router"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chatmsg.ModelLabel(tt.msg))
		})
	}
}

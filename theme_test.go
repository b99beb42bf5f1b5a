package chatmsg_test

import (
	"testing"

	"github.com/fwojciec/chatmsg"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := chatmsg.DefaultTheme()

	assert.Equal(t, 4, theme.UserMsg)
	assert.Equal(t, 8, theme.Assistant)
	assert.Equal(t, 8, theme.Reasoning)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 2, theme.Success)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 0, theme.CodeBg)
	assert.Equal(t, 5, theme.Accent)
	assert.Equal(t, 4, theme.Link)
}

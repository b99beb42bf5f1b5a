package chatmsg_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/chatmsg"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"empty", "", 50, ""},
		{"below limit", "short", 50, "short"},
		{"exact boundary has no ellipsis", strings.Repeat("x", 50), 50, strings.Repeat("x", 50)},
		{"one over the limit", strings.Repeat("x", 51), 50, strings.Repeat("x", 50) + "..."},
		{"zero limit", "abc", 0, "..."},
		{"negative limit behaves as zero", "abc", -3, "..."},
		{"multibyte runes count once", "héllo wörld", 5, "héllo..."},
		{"grapheme clusters are not split", "e\u0301e\u0301e\u0301", 2, "e\u0301e\u0301..."},
		{"emoji sequence counts once", "\U0001F469\u200d\U0001F4BB\U0001F469\u200d\U0001F4BB", 1, "\U0001F469\u200d\U0001F4BB..."},
		{"cuts through markdown syntax", "**bold text**", 6, "**bold..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chatmsg.Truncate(tt.text, tt.limit))
		})
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", chatmsg.Preview(""))
	assert.Equal(t, strings.Repeat("y", 50), chatmsg.Preview(strings.Repeat("y", 50)))
	assert.Equal(t, strings.Repeat("y", 50)+chatmsg.Ellipsis, chatmsg.Preview(strings.Repeat("y", 80)))
}

package chatmsg

import (
	"strings"

	"github.com/rivo/uniseg"
)

// PreviewLimit is the number of characters kept by Preview.
const PreviewLimit = 50

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Truncate returns text unchanged when it has at most limit characters,
// otherwise its first limit characters followed by Ellipsis. A character is
// a grapheme cluster, so combining marks and emoji sequences are never split.
// The cut is not markdown-aware and may land inside markdown syntax.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		if n == limit {
			return b.String() + Ellipsis
		}
		b.WriteString(g.Str())
		n++
	}
	return text
}

// Preview truncates text to PreviewLimit characters.
func Preview(text string) string {
	return Truncate(text, PreviewLimit)
}

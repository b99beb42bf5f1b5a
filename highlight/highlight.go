// Package highlight renders source code with ANSI syntax coloring using
// chroma.
package highlight

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// StyleName is the chroma style used for code blocks.
const StyleName = "onedark"

// lexerCache maps lowercased language names to coalesced lexers. A nil
// entry records that chroma has no lexer for the name.
var lexerCache sync.Map // string -> chroma.Lexer

func lexer(language string) chroma.Lexer {
	key := strings.ToLower(language)
	if cached, ok := lexerCache.Load(key); ok {
		l, _ := cached.(chroma.Lexer)
		return l
	}
	l := lexers.Get(key)
	if l != nil {
		l = chroma.Coalesce(l)
	}
	lexerCache.Store(key, l)
	return l
}

// Supported reports whether chroma has a lexer for language.
func Supported(language string) bool {
	return language != "" && lexer(language) != nil
}

// Code returns code highlighted for language with ANSI escape sequences.
// The code is returned unchanged when the language is unknown or
// highlighting fails. A single trailing newline is removed.
func Code(language, code string) string {
	code = strings.TrimSuffix(code, "\n")
	if code == "" || language == "" {
		return code
	}
	l := lexer(language)
	if l == nil {
		return code
	}
	it, err := l.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter().Format(&buf, style(), it); err != nil {
		return code
	}
	return trimTrailingBlank(buf.String())
}

// trimTrailingBlank drops lines that carry only escape sequences, which
// lexers that force a final newline leave behind after the last token.
func trimTrailingBlank(s string) string {
	lines := strings.Split(s, "\n")
	trimmed := false
	for len(lines) > 1 && ansi.Strip(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
		trimmed = true
	}
	out := strings.Join(lines, "\n")
	if trimmed {
		out += ansi.ResetStyle
	}
	return out
}

func style() *chroma.Style {
	if s := styles.Get(StyleName); s != nil {
		return s
	}
	return styles.Fallback
}

// formatter prefers the 256-color palette over true color.
func formatter() chroma.Formatter {
	if f := formatters.Get("terminal256"); f != nil {
		return f
	}
	return formatters.Fallback
}

// Package goldmark renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. GitHub Flavored
// Markdown (tables, strikethrough, task lists, autolinks) and TeX math are
// supported; fenced code with a language is syntax highlighted.
package goldmark

import (
	"github.com/fwojciec/chatmsg"
	"github.com/fwojciec/chatmsg/latex"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// NoFocus disables the focus marker on code block headers.
const NoFocus = -1

// Options control a single render.
type Options struct {
	// Width is the wrap width. Values <= 0 mean 80.
	Width int
	// TableOffset is the left edge, in cells, of the window through which
	// tables wider than Width are shown.
	TableOffset int
	// FocusedCode is the index of the code block whose header is marked, or
	// NoFocus.
	FocusedCode int
	// Copied reports whether the code block at index shows the copied
	// indicator. Nil means none do.
	Copied func(index int) bool
}

// CodeBlock is a fenced code block that carries a language tag. Only these
// blocks are highlighted and offer the copy affordance.
type CodeBlock struct {
	Language string
	// Code is the raw block content, as written, including its final newline.
	Code string
}

// Document is the result of rendering markdown.
type Document struct {
	Text       string
	CodeBlocks []CodeBlock
	// TableOverflow is the widest amount, in cells, by which a table
	// exceeds the render width. Zero when every table fits.
	TableOverflow int
}

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks and
// tables are rendered at full width without reflow.
func Render(source string, width int, theme chatmsg.Theme) string {
	return RenderDocument(source, theme, Options{Width: width, FocusedCode: NoFocus}).Text
}

// RenderDocument renders source like Render and also reports the code
// blocks and table overflow needed to drive copy and scroll controls.
func RenderDocument(source string, theme chatmsg.Theme, opts Options) Document {
	if source == "" {
		return Document{}
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	r := newRenderer(theme, opts)
	return r.render([]byte(source))
}

// CodeBlocks returns the language-tagged fenced code blocks of source in
// document order, without rendering.
func CodeBlocks(source string) []CodeBlock {
	if source == "" {
		return nil
	}
	src := []byte(source)
	doc := parse(src)
	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := n.(*ast.FencedCodeBlock); ok {
			if lang := string(fc.Language(src)); lang != "" {
				blocks = append(blocks, CodeBlock{Language: lang, Code: rawLines(fc, src)})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func parse(source []byte) ast.Node {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, latex.Extension))
	return md.Parser().Parse(text.NewReader(source))
}

func rawLines(n ast.Node, source []byte) string {
	lines := n.Lines()
	var out []byte
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(source)...)
	}
	return string(out)
}

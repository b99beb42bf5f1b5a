// Package latex adds TeX math to goldmark and converts TeX math source to
// Unicode notation suitable for a terminal.
//
// Inline math is written $x^2$ and display math $$\sum_i x_i$$, both on a
// single line. Display math may also span lines as a block fenced by lines
// holding only $$:
//
//	$$
//	\sum_i x_i
//	$$
package latex

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMath is the ast.NodeKind of Math nodes.
var KindMath = ast.NewNodeKind("Math")

// Math is an inline node holding raw TeX source.
type Math struct {
	ast.BaseInline
	Literal []byte
	Display bool
}

// Kind implements ast.Node.
func (n *Math) Kind() ast.NodeKind { return KindMath }

// Dump implements ast.Node.
func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Literal": string(n.Literal),
	}, nil)
}

// KindMathBlock is the ast.NodeKind of MathBlock nodes.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathBlock is a display math block whose lines sit between two $$ fences.
type MathBlock struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Literal returns the TeX source of the block with its lines joined by
// single spaces.
func (n *MathBlock) Literal(source []byte) []byte {
	lines := n.Lines()
	parts := make([][]byte, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if line := bytes.TrimSpace(seg.Value(source)); len(line) > 0 {
			parts = append(parts, line)
		}
	}
	return bytes.Join(parts, []byte(" "))
}

// Extension registers the math inline and block parsers. Use it with
// goldmark.WithExtensions.
var Extension goldmark.Extender = &extension{}

type extension struct{}

func (e *extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(&mathParser{}, 150)),
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 700)),
	)
}

var fence = []byte("$$")

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.Equal(bytes.TrimSpace(line[pos:]), fence) {
		return nil, parser.NoChildren
	}
	return &MathBlock{}, parser.NoChildren
}

// Continue collects lines until the closing fence. A block left open runs
// to the end of its container.
func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if bytes.Equal(bytes.TrimSpace(line), fence) {
		reader.Advance(segment.Len())
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }

func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type mathParser struct{}

func (p *mathParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse follows the pandoc rule for inline math: the opening $ must be
// followed by a non-space and the closing $ preceded by a non-space and not
// followed by a digit, so "costs $5 and $10" stays text.
func (p *mathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '$' {
		return nil
	}
	if line[1] == '$' {
		end := bytes.Index(line[2:], []byte("$$"))
		if end < 0 {
			return nil
		}
		literal := bytes.TrimSpace(line[2 : 2+end])
		if len(literal) == 0 {
			return nil
		}
		block.Advance(2 + end + 2)
		return &Math{Literal: literal, Display: true}
	}
	if isSpace(line[1]) {
		return nil
	}
	for i := 2; i < len(line); i++ {
		switch {
		case line[i] == '\\':
			i++
		case line[i] == '$':
			if isSpace(line[i-1]) {
				continue
			}
			if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
				continue
			}
			literal := line[1:i]
			block.Advance(i + 1)
			return &Math{Literal: literal}
		}
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// IsDisplayParagraph reports whether a paragraph holds nothing but one
// display math node, in which case it is rendered as a standalone block.
func IsDisplayParagraph(n ast.Node, source []byte) (*Math, bool) {
	var found *Math
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *Math:
			if !v.Display || found != nil {
				return nil, false
			}
			found = v
		case *ast.Text:
			if len(bytes.TrimSpace(v.Segment.Value(source))) > 0 {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return found, found != nil
}

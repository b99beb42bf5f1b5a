package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/chatmsg"
	"github.com/fwojciec/chatmsg/highlight"
	"github.com/fwojciec/chatmsg/latex"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

type blockFunc func(n ast.Node, width int, buf *bytes.Buffer)

type inlineFunc func(n ast.Node, buf *bytes.Buffer)

type styles struct {
	h1, h2, h3    lipgloss.Style
	bold          lipgloss.Style
	italic        lipgloss.Style
	strike        lipgloss.Style
	code          lipgloss.Style
	link          lipgloss.Style
	muted         lipgloss.Style
	marker        lipgloss.Style
	quote         lipgloss.Style
	math          lipgloss.Style
	accent        lipgloss.Style
	copied        lipgloss.Style
	tableHeader   lipgloss.Style
	tableCell     lipgloss.Style
	tableBorder   lipgloss.Style
	codeGutter    string
	displayIndent string
}

func newStyles(theme chatmsg.Theme) styles {
	muted := lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true)
	return styles{
		h1:            lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true).Underline(true),
		h2:            lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		h3:            lipgloss.NewStyle().Bold(true),
		bold:          lipgloss.NewStyle().Bold(true),
		italic:        lipgloss.NewStyle().Italic(true),
		strike:        lipgloss.NewStyle().Strikethrough(true),
		code:          lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Padding(0, 1),
		link:          lipgloss.NewStyle().Foreground(ansiColor(theme.Link)).Underline(true),
		muted:         muted,
		marker:        lipgloss.NewStyle().Faint(true),
		quote:         lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(ansiColor(theme.Muted)).PaddingLeft(1).Italic(true),
		math:          lipgloss.NewStyle().Italic(true),
		accent:        lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		copied:        lipgloss.NewStyle().Foreground(ansiColor(theme.Success)),
		tableHeader:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		tableCell:     lipgloss.NewStyle().Padding(0, 1),
		tableBorder:   muted,
		codeGutter:    muted.Render("│") + " ",
		displayIndent: "    ",
	}
}

type ansiRenderer struct {
	styles  styles
	opts    Options
	source  []byte
	blocks  map[ast.NodeKind]blockFunc
	inlines map[ast.NodeKind]inlineFunc

	codeBlocks    []CodeBlock
	tableOverflow int
}

func newRenderer(theme chatmsg.Theme, opts Options) *ansiRenderer {
	r := &ansiRenderer{styles: newStyles(theme), opts: opts}
	// Closed set of element kinds with their rendering policy. Anything
	// else renders its children.
	r.blocks = map[ast.NodeKind]blockFunc{
		ast.KindParagraph:       r.paragraph,
		ast.KindTextBlock:       r.paragraph,
		ast.KindHeading:         r.heading,
		ast.KindFencedCodeBlock: r.fencedCode,
		ast.KindCodeBlock:       r.indentedCode,
		ast.KindList:            r.list,
		ast.KindBlockquote:      r.blockquote,
		ast.KindThematicBreak:   r.thematicBreak,
		ast.KindHTMLBlock:       r.htmlBlock,
		east.KindTable:          r.table,
		latex.KindMathBlock:     r.mathBlock,
	}
	r.inlines = map[ast.NodeKind]inlineFunc{
		ast.KindText:           r.text,
		ast.KindString:         r.str,
		ast.KindEmphasis:       r.emphasis,
		ast.KindCodeSpan:       r.codeSpan,
		ast.KindLink:           r.link,
		ast.KindAutoLink:       r.autoLink,
		ast.KindImage:          r.image,
		ast.KindRawHTML:        r.rawHTML,
		east.KindStrikethrough: r.strikethrough,
		east.KindTaskCheckBox:  r.taskCheckBox,
		latex.KindMath:         r.math,
	}
	return r
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(source []byte) Document {
	r.source = source
	doc := parse(source)

	var buf bytes.Buffer
	r.walkBlock(doc, r.opts.Width, &buf)
	return Document{
		Text:          strings.TrimRight(buf.String(), "\n"),
		CodeBlocks:    r.codeBlocks,
		TableOverflow: r.tableOverflow,
	}
}

// walkBlock renders each child block and separates siblings with a blank line.
func (r *ansiRenderer) walkBlock(node ast.Node, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, width, buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (r *ansiRenderer) renderBlock(node ast.Node, width int, buf *bytes.Buffer) {
	if f, ok := r.blocks[node.Kind()]; ok {
		f(node, width, buf)
		return
	}
	r.walkBlock(node, width, buf)
}

func (r *ansiRenderer) mathBlock(node ast.Node, _ int, buf *bytes.Buffer) {
	r.displayMath(node.(*latex.MathBlock).Literal(r.source), buf)
}

func (r *ansiRenderer) displayMath(literal []byte, buf *bytes.Buffer) {
	buf.WriteString(r.styles.displayIndent)
	buf.WriteString(r.styles.math.Render(latex.ToUnicode(string(literal))))
	buf.WriteString("\n")
}

func (r *ansiRenderer) paragraph(node ast.Node, width int, buf *bytes.Buffer) {
	if m, ok := latex.IsDisplayParagraph(node, r.source); ok {
		r.displayMath(m.Literal, buf)
		return
	}
	inline := r.collectInline(node)
	buf.WriteString(wrap(inline, width))
	buf.WriteString("\n")
}

func (r *ansiRenderer) heading(node ast.Node, width int, buf *bytes.Buffer) {
	n := node.(*ast.Heading)
	style := r.styles.h3
	switch n.Level {
	case 1:
		style = r.styles.h1
	case 2:
		style = r.styles.h2
	}
	inline := r.collectInline(n)
	buf.WriteString(wrap(style.Render(inline), width))
	buf.WriteString("\n")
}

// fencedCode highlights blocks that name a language and gives them a header
// row with the language and the copy indicator. Untagged blocks are shown in
// the inline code style.
func (r *ansiRenderer) fencedCode(node ast.Node, width int, buf *bytes.Buffer) {
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(r.source))
	raw := rawLines(n, r.source)
	if lang == "" {
		r.plainCode(raw, buf)
		return
	}

	index := len(r.codeBlocks)
	r.codeBlocks = append(r.codeBlocks, CodeBlock{Language: lang, Code: raw})

	buf.WriteString(r.codeHeader(index, lang))
	buf.WriteString("\n")
	highlighted := highlight.Code(lang, raw)
	if highlighted == "" {
		return
	}
	for _, line := range strings.Split(highlighted, "\n") {
		buf.WriteString(r.styles.codeGutter + line)
		buf.WriteString("\n")
	}
}

func (r *ansiRenderer) codeHeader(index int, lang string) string {
	label := r.styles.muted.Render(lang)
	if index == r.opts.FocusedCode {
		label = r.styles.accent.Render("▸ " + lang)
	}
	ordinal := r.styles.muted.Render(fmt.Sprintf("[%d]", index+1))
	indicator := r.styles.muted.Render("⧉ copy")
	if r.opts.Copied != nil && r.opts.Copied(index) {
		indicator = r.styles.copied.Render("✓ copied")
	}
	return label + " " + ordinal + " " + indicator
}

func (r *ansiRenderer) indentedCode(node ast.Node, width int, buf *bytes.Buffer) {
	r.plainCode(rawLines(node, r.source), buf)
}

func (r *ansiRenderer) plainCode(raw string, buf *bytes.Buffer) {
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return
	}
	for _, line := range strings.Split(raw, "\n") {
		buf.WriteString(r.styles.code.Render(line))
		buf.WriteString("\n")
	}
}

func (r *ansiRenderer) blockquote(node ast.Node, width int, buf *bytes.Buffer) {
	innerWidth := width - 2
	if innerWidth < 10 {
		innerWidth = 10
	}
	var inner bytes.Buffer
	r.walkBlock(node, innerWidth, &inner)
	buf.WriteString(r.styles.quote.Render(strings.TrimRight(inner.String(), "\n")))
	buf.WriteString("\n")
}

func (r *ansiRenderer) thematicBreak(node ast.Node, width int, buf *bytes.Buffer) {
	buf.WriteString(r.styles.muted.Render(strings.Repeat("─", width)))
	buf.WriteString("\n")
}

func (r *ansiRenderer) htmlBlock(node ast.Node, width int, buf *bytes.Buffer) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(r.source))
	}
}

func (r *ansiRenderer) list(node ast.Node, width int, buf *bytes.Buffer) {
	r.renderList(node.(*ast.List), width, buf, 0)
}

func (r *ansiRenderer) renderList(node *ast.List, width int, buf *bytes.Buffer, depth int) {
	ordered := node.IsOrdered()
	start := node.Start
	itemNum := 0

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", depth)
		var marker string
		if ordered {
			itemNum++
			marker = fmt.Sprintf("%d. ", start+itemNum-1)
		} else {
			marker = "• "
		}

		var itemBuf bytes.Buffer
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if itemBuf.Len() > 0 {
					itemBuf.WriteString("\n")
				}
				itemBuf.WriteString(r.collectInline(in))
			case *ast.List:
				if itemBuf.Len() > 0 {
					r.writeListItem(buf, indent, marker, itemBuf.String(), width)
					itemBuf.Reset()
				}
				r.renderList(in, width, buf, depth+1)
				marker = strings.Repeat(" ", ansi.StringWidth(marker))
			default:
				r.renderBlock(ic, width-len(indent)-ansi.StringWidth(marker), &itemBuf)
			}
		}

		if itemBuf.Len() > 0 {
			r.writeListItem(buf, indent, marker, strings.TrimRight(itemBuf.String(), "\n"), width)
		}
	}
}

// writeListItem writes a list item with proper continuation-line indentation.
func (r *ansiRenderer) writeListItem(buf *bytes.Buffer, indent, marker, content string, width int) {
	prefix := indent + marker
	itemWidth := width - ansi.StringWidth(prefix)
	if itemWidth < 10 {
		itemWidth = 10
	}
	lines := strings.Split(wrap(content, itemWidth), "\n")
	styledPrefix := indent + r.styles.marker.Render(marker)
	continuation := strings.Repeat(" ", ansi.StringWidth(prefix))
	for i, line := range lines {
		if i == 0 {
			buf.WriteString(styledPrefix + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

// collectInline recursively collects styled inline text from a node's children.
func (r *ansiRenderer) collectInline(node ast.Node) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) renderInline(node ast.Node, buf *bytes.Buffer) {
	if f, ok := r.inlines[node.Kind()]; ok {
		f(node, buf)
		return
	}
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, buf)
	}
}

func (r *ansiRenderer) text(node ast.Node, buf *bytes.Buffer) {
	n := node.(*ast.Text)
	buf.Write(n.Segment.Value(r.source))
	if n.HardLineBreak() {
		buf.WriteByte('\n')
	} else if n.SoftLineBreak() {
		buf.WriteByte(' ')
	}
}

func (r *ansiRenderer) str(node ast.Node, buf *bytes.Buffer) {
	buf.Write(node.(*ast.String).Value)
}

func (r *ansiRenderer) emphasis(node ast.Node, buf *bytes.Buffer) {
	n := node.(*ast.Emphasis)
	inner := r.collectInline(n)
	if n.Level == 1 {
		buf.WriteString(r.styles.italic.Render(inner))
		return
	}
	// Goldmark represents ***bold italic*** as nested Emphasis nodes, so
	// every other level is bold.
	buf.WriteString(r.styles.bold.Render(inner))
}

func (r *ansiRenderer) codeSpan(node ast.Node, buf *bytes.Buffer) {
	buf.WriteString(r.styles.code.Render(r.collectInline(node)))
}

// link shows the text and then the destination, since the terminal leaves
// opening it to the user.
func (r *ansiRenderer) link(node ast.Node, buf *bytes.Buffer) {
	n := node.(*ast.Link)
	inner := r.collectInline(n)
	url := string(n.Destination)
	buf.WriteString(r.styles.link.Render(inner))
	if ansi.Strip(inner) == url {
		return
	}
	buf.WriteString(" ")
	buf.WriteString(r.styles.muted.Render("(" + url + ")"))
}

func (r *ansiRenderer) autoLink(node ast.Node, buf *bytes.Buffer) {
	n := node.(*ast.AutoLink)
	buf.WriteString(r.styles.link.Render(string(n.URL(r.source))))
}

func (r *ansiRenderer) image(node ast.Node, buf *bytes.Buffer) {
	n := node.(*ast.Image)
	alt := r.collectInline(n)
	url := string(n.Destination)
	buf.WriteString(r.styles.link.Render(alt))
	buf.WriteString(" ")
	buf.WriteString(r.styles.muted.Render("(" + url + ")"))
}

func (r *ansiRenderer) rawHTML(node ast.Node, buf *bytes.Buffer) {
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		buf.Write(seg.Value(r.source))
	}
}

func (r *ansiRenderer) strikethrough(node ast.Node, buf *bytes.Buffer) {
	buf.WriteString(r.styles.strike.Render(r.collectInline(node)))
}

func (r *ansiRenderer) taskCheckBox(node ast.Node, buf *bytes.Buffer) {
	if node.(*east.TaskCheckBox).IsChecked {
		buf.WriteString("☑ ")
		return
	}
	buf.WriteString("☐ ")
}

func (r *ansiRenderer) math(node ast.Node, buf *bytes.Buffer) {
	n := node.(*latex.Math)
	buf.WriteString(r.styles.math.Render(latex.ToUnicode(string(n.Literal))))
}

// wrap word-wraps s to width, breaking words longer than a line.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}

package goldmark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// table renders a GFM table with a border. A table wider than width is shown
// through a horizontal window starting at Options.TableOffset, followed by a
// scroll hint.
func (r *ansiRenderer) table(node ast.Node, width int, buf *bytes.Buffer) {
	n := node.(*east.Table)

	var headers []string
	var rows [][]string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cells := r.tableCells(c)
		switch c.(type) {
		case *east.TableHeader:
			headers = cells
		case *east.TableRow:
			rows = append(rows, cells)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.tableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := r.styles.tableCell
			if row == table.HeaderRow {
				style = r.styles.tableHeader
			}
			if col < len(n.Alignments) {
				style = style.Align(alignment(n.Alignments[col]))
			}
			return style
		})

	rendered := t.Render()
	lines := strings.Split(rendered, "\n")
	tableWidth := 0
	for _, line := range lines {
		tableWidth = max(tableWidth, ansi.StringWidth(line))
	}

	overflow := tableWidth - width
	if overflow <= 0 {
		buf.WriteString(rendered)
		buf.WriteString("\n")
		return
	}

	r.tableOverflow = max(r.tableOverflow, overflow)
	offset := min(max(r.opts.TableOffset, 0), overflow)
	for _, line := range lines {
		buf.WriteString(ansi.Cut(line, offset, offset+width))
		buf.WriteString("\n")
	}
	buf.WriteString(r.styles.muted.Render(scrollHint(offset, overflow)))
	buf.WriteString("\n")
}

func (r *ansiRenderer) tableCells(row ast.Node) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.TableCell); ok {
			cells = append(cells, r.collectInline(c))
		}
	}
	return cells
}

func scrollHint(offset, overflow int) string {
	var arrows string
	switch {
	case offset == 0:
		arrows = "→"
	case offset == overflow:
		arrows = "←"
	default:
		arrows = "← →"
	}
	return fmt.Sprintf("%s scroll table (%d/%d)", arrows, offset, overflow)
}

func alignment(a east.Alignment) lipgloss.Position {
	switch a {
	case east.AlignRight:
		return lipgloss.Right
	case east.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders aligned columns with a header separator line. Numeric
// columns can be right-aligned via AlignRight, keyed by column index.
type Table struct {
	Headers    []string
	Rows       [][]string
	AlignRight map[int]bool
}

// Render produces the table. Column widths are the maximum visible width
// found per column; lipgloss.Width ignores ANSI escapes so styled cells
// align correctly.
func (t *Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder
	for i, h := range t.Headers {
		t.writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], i, cols, colGap)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			t.writeCell(&b, cell, lipgloss.Width(cell), widths[i], i, cols, colGap)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (t *Table) writeCell(b *strings.Builder, cell string, visible, width, col, cols, gap int) {
	pad := width - visible
	if pad < 0 {
		pad = 0
	}
	if t.AlignRight[col] {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(cell)
		if col < cols-1 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		return
	}
	b.WriteString(cell)
	if col < cols-1 {
		b.WriteString(strings.Repeat(" ", pad+gap))
	}
}

// RenderTable renders a left-aligned table.
func RenderTable(headers []string, rows [][]string) string {
	t := &Table{Headers: headers, Rows: rows}
	return t.Render()
}

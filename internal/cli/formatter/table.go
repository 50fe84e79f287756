package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tableGap separates adjacent columns.
const tableGap = "  "

// RenderTable lays out rows under headers, padding every column to its
// widest visible cell. Styled cells are measured without their escape codes.
// The last column is never padded.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := columnWidths(headers, rows)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}

	var b strings.Builder
	writeTableRow(&b, widths, headers, StyleHeader.Render)
	writeTableRow(&b, widths, rule, nil)
	for _, row := range rows {
		writeTableRow(&b, widths, row, nil)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

// writeTableRow writes one line. Missing trailing cells render empty; style,
// when set, is applied to each cell after measuring it.
func writeTableRow(b *strings.Builder, widths []int, cells []string, style func(...string) string) {
	last := len(widths) - 1
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(w-lipgloss.Width(cell), 0)
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", pad) + tableGap)
		}
	}
	b.WriteByte('\n')
}

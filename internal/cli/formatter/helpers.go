package formatter

import (
	"strings"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(1, 2)

// RenderBox frames body in a rounded border, under an upper-cased title
// when one is given.
func RenderBox(title, body string) string {
	if title == "" {
		return boxStyle.Render(body)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + body)
}

// TruncID renders the short display form of id, dimmed.
func TruncID(id string) string {
	return Dim(domain.DisplayID(id))
}

// Truncate cuts s to at most width terminal cells, ending in "…" when cut.
// A width of zero or less leaves s alone.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + "…"
}

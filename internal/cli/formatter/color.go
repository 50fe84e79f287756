package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ost/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette (Gruvbox dark).
var (
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorDim    = lipgloss.Color("#928374")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorOrange = lipgloss.Color("#fe8019")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	StyleFg         = fg(ColorFg)
	StyleBold       = fg(ColorFg).Bold(true)
	StyleDim        = fg(ColorDim)
	StyleRed        = fg(ColorRed)
	StyleGreen      = fg(ColorGreen)
	StyleYellow     = fg(ColorYellow)
	StyleYellowBold = fg(ColorYellow).Bold(true)
	StyleBlue       = fg(ColorBlue)
	StylePurple     = fg(ColorPurple)
	StyleAqua       = fg(ColorAqua)
	StyleHeader     = fg(ColorOrange).Bold(true)
)

// kindColors maps each node kind to its accent. The outcome shares the
// header orange since it heads the tree.
var kindColors = map[domain.NodeKind]lipgloss.Color{
	domain.NodeOutcome:     ColorOrange,
	domain.NodeOpportunity: ColorBlue,
	domain.NodeSolution:    ColorGreen,
	domain.NodeTest:        ColorAqua,
}

// KindColor returns the accent for kind, dim for unknown kinds.
func KindColor(kind domain.NodeKind) lipgloss.Color {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return ColorDim
}

// KindStyle is the label style for kind; the outcome is also bold.
func KindStyle(kind domain.NodeKind) lipgloss.Style {
	return fg(KindColor(kind)).Bold(kind.IsRoot())
}

// KindBadge renders kind's capitalised label in its accent.
func KindBadge(kind domain.NodeKind) string {
	return KindStyle(kind).Render(kind.Label())
}

// Header renders text upper-cased over a dim rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return StyleHeader.Render(title) + "\n" + Dim(strings.Repeat("─", lipgloss.Width(title)))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }

// Error renders err as a one-line message with a red prefix.
func Error(err error) string {
	return fmt.Sprintf("%s %v", StyleRed.Render("Error:"), err)
}

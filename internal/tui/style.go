package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/waabox/buildboard/internal/status"
)

var palette = map[status.Color]lipgloss.Color{
	status.Blue:   lipgloss.Color("12"),
	status.Green:  lipgloss.Color("10"),
	status.Red:    lipgloss.Color("9"),
	status.Orange: lipgloss.Color("214"),
	status.Grey:   lipgloss.Color("8"),
}

var glyphs = map[status.Icon]string{
	status.IconRunning:  "●",
	status.IconSuccess:  "✓",
	status.IconFailure:  "✗",
	status.IconUnstable: "!",
	status.IconAborted:  "⊘",
	status.IconSkipped:  "↷",
	status.IconUnknown:  "?",
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(palette[status.Grey])
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle     = lipgloss.NewStyle().Foreground(palette[status.Red]).Bold(true)
)

const separator = "────────────────────────────────────────────────────────────\n"

// statusStyle returns the foreground style for a category.
func statusStyle(c status.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(palette[c.Color()])
}

// statusIcon renders the coloured glyph for a category.
func statusIcon(c status.Category) string {
	glyph, ok := glyphs[c.Icon()]
	if !ok {
		glyph = "?"
	}
	return statusStyle(c).Render(glyph)
}

// StatusLabel renders the coloured glyph and label for a category, for
// output outside the dashboard.
func StatusLabel(c status.Category) string {
	return statusIcon(c) + " " + statusStyle(c).Render(c.Label())
}

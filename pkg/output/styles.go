package output

import "github.com/charmbracelet/lipgloss"

var (
	ColorCyan   = lipgloss.Color("14")
	ColorGreen  = lipgloss.Color("82")
	ColorYellow = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("204")
	ColorDim    = lipgloss.Color("240")
)

var (
	// StyleNoun styles identifiable nouns: repositories, tags, branches.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	StyleDim = lipgloss.NewStyle().Faint(true)

	StyleHeading = lipgloss.NewStyle().Bold(true)
)

// Check status words as printed in reports.
const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusSkipped = "n/a"
)

// StatusStyle returns the style for a check status word. Unknown statuses
// are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusPass:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusFail:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow).Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// StatusSymbol is the one-character marker for a status.
func StatusSymbol(status string) string {
	switch status {
	case StatusPass:
		return StatusStyle(status).Render("✔")
	case StatusFail:
		return StatusStyle(status).Render("✘")
	default:
		return StatusStyle(status).Render("-")
	}
}

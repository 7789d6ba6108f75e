package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Theme holds the styles used by the summaries.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	Check string
	Cross string
	Arrow string
}

// NewTheme returns the colored theme when styled is true and a plain,
// ASCII-only theme otherwise.
func NewTheme(styled bool) Theme {
	if !styled {
		plain := lipgloss.NewStyle()
		return Theme{
			Title: plain, Label: plain, Value: plain, Muted: plain, Success: plain, Error: plain,
			Check: "OK", Cross: "FAIL", Arrow: "->",
		}
	}
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Label:   lipgloss.NewStyle().Foreground(ColorSecondary).Width(10),
		Value:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Check:   "✓",
		Cross:   "✗",
		Arrow:   "→",
	}
}

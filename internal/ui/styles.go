package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - single cyan accent with muted grays, so the result
// rows stay readable over any terminal background.
const (
	ColorAccent   = "51"  // Primary accent - bright cyan
	ColorAccDim   = "37"  // Dimmed accent for borders and markers
	ColorWhite    = "255" // Headers, display names
	ColorGray     = "245" // Handles, secondary text
	ColorDarkGray = "238" // Separators, placeholders
	ColorRed      = "196" // Errors
	ColorGreen    = "84"  // Verified tag
)

// Styles holds all UI styles for the search widget.
type Styles struct {
	// Text styles
	Header   lipgloss.Style
	Name     lipgloss.Style
	Handle   lipgloss.Style
	Verified lipgloss.Style
	Error    lipgloss.Style
	Dim      lipgloss.Style
	Label    lipgloss.Style
	Link     lipgloss.Style

	// Row/panel styles
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Border   lipgloss.Style
}

// DefaultStyles returns styled components for TUI mode.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Name:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Handle:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Verified: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Link:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccDim)).Underline(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle(),
		Name:     lipgloss.NewStyle(),
		Handle:   lipgloss.NewStyle(),
		Verified: lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle(),
		Link:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle(),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Border:   lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

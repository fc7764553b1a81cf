package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the chat window.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	UserLabel   lipgloss.Style
	BotLabel    lipgloss.Style
	Message     lipgloss.Style
	Product     lipgloss.Style
	Price       lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	InputBox    lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
}

// Garden is the default theme.
var Garden = Theme{
	Primary: lipgloss.Color("#E75480"),
	Muted:   lipgloss.Color("#777777"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#E75480")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#777777")),
	UserLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#E75480")),
	BotLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#B39DDB")),
	Message: lipgloss.NewStyle().
		PaddingLeft(2),
	Product: lipgloss.NewStyle().
		PaddingLeft(4).
		Foreground(lipgloss.Color("#5FB878")),
	Price: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#777777")),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D64545")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#B39DDB")).
		Italic(true),
	InputBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#E75480")).
		Padding(0, 1),
}

// Package cli provides styled terminal output and the line-based chat loop.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colors, named after the flowers they come from.
var (
	Rose      = lipgloss.Color("#E75480")
	Leaf      = lipgloss.Color("#5FB878")
	Sunflower = lipgloss.Color("#F7C948")
	Poppy     = lipgloss.Color("#D64545")
	Lavender  = lipgloss.Color("#B39DDB")
	Stem      = lipgloss.Color("#777777")
)

// Icons.
const (
	FlowerIcon = "🌸"
	BotIcon    = "💐"
	UserIcon   = "🙂"
	StarIcon   = "⭐"
	ErrorIcon  = "✗"
)

// Shared text styles.
var (
	SubtleStyle      = lipgloss.NewStyle().Foreground(Stem)
	BoldStyle        = lipgloss.NewStyle().Bold(true)
	PromptStyle      = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	BotStyle         = lipgloss.NewStyle().Bold(true).Foreground(Lavender)
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Rose)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rose).
			Padding(0, 1)
)

// tone is the kind of a one-line status message.
type tone struct {
	style lipgloss.Style
	icon  string
}

var (
	successTone = tone{icon: "✓", style: lipgloss.NewStyle().Foreground(Leaf)}
	warningTone = tone{icon: "⚠️", style: lipgloss.NewStyle().Foreground(Sunflower)}
	errorTone   = tone{icon: ErrorIcon, style: lipgloss.NewStyle().Foreground(Poppy)}
	infoTone    = tone{icon: "ℹ️", style: lipgloss.NewStyle().Foreground(Lavender)}
)

func (t tone) render(message string) string {
	return t.style.Render(t.icon + " " + message)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string { return successTone.render(message) }

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string { return warningTone.render(message) }

// FormatError formats an error message with icon.
func FormatError(message string) string { return errorTone.render(message) }

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string { return infoTone.render(message) }

// FormatTitle renders a section title, followed by a blank line.
func FormatTitle(title string) string {
	return titleStyle.MarginBottom(1).Render(FlowerIcon + " " + title)
}

// FormatPrompt renders the label shown before user input.
func FormatPrompt(label string) string {
	return PromptStyle.Render(label + " → ")
}

// RenderBox draws content in a rounded rose border under a bold title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}

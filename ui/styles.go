package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	warningColor = lipgloss.Color("11")
	dangerColor  = lipgloss.Color("9")

	// User turn label
	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// Assistant turn label
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// Timestamps, hints and previews
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor)
)

// FormatFooter formats alternating keys and descriptions.
// Usage: FormatFooter("Enter", "Send", "Ctrl+H", "History")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i+1 < len(parts); i += 2 {
		result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
	}
	return strings.Join(result, "  ")
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ModalType determines the title color of a modal
type ModalType int

const (
	ModalTypeInfo ModalType = iota
	ModalTypeWarning
	ModalTypeError
)

func (t ModalType) color() lipgloss.Color {
	switch t {
	case ModalTypeWarning:
		return warningColor
	case ModalTypeError:
		return dangerColor
	default:
		return accentColor
	}
}

// modalWidthFor clamps the preferred width to the terminal.
func modalWidthFor(desired, width int) int {
	if desired == 0 {
		desired = 60
	}
	if width < desired+10 {
		desired = width - 10
	}
	if desired < 10 {
		desired = 10
	}
	return desired
}

// RenderThreeSectionModal renders a borderless modal: title, body lines
// and footer separated by rules, centered in width x height.
func RenderThreeSectionModal(title string, bodyLines []string, footer string, modalType ModalType, desiredWidth, width, height int) string {
	modalWidth := modalWidthFor(desiredWidth, width)

	// runewidth keeps wide glyphs centered
	titleWidth := runewidth.StringWidth(title)
	leftPad := (modalWidth - titleWidth) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := modalWidth - titleWidth - leftPad
	if rightPad < 0 {
		rightPad = 0
	}
	centeredTitle := strings.Repeat(" ", leftPad) + title + strings.Repeat(" ", rightPad)

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(modalType.color()).
		Render(centeredTitle)

	contentLines := make([]string, 0, len(bodyLines)+2)
	contentLines = append(contentLines, "")
	contentLines = append(contentLines, bodyLines...)
	contentLines = append(contentLines, "")

	bodySection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Width(modalWidth).
		Render(strings.Join(contentLines, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, bodySection, footerSection}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// singleLine collapses whitespace runs so previews fit one row.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrorModal is a standalone program shown when the chat panel cannot
// start (unreadable config, unusable data directory).
type ErrorModal struct {
	title   string
	message string
	width   int
	height  int
}

func NewErrorModal(title, message string) ErrorModal {
	return ErrorModal{
		title:   title,
		message: message,
	}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 10 {
		return m.title + ": " + m.message
	}

	modalWidth := modalWidthFor(60, m.width)
	lineStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Center)

	var lines []string
	for _, line := range strings.Split(wrapText(m.message, modalWidth), "\n") {
		lines = append(lines, lineStyle.Render(line))
	}

	return RenderThreeSectionModal(m.title, lines, "Press Enter to quit", ModalTypeError, modalWidth, m.width, m.height)
}

// wrapText wraps on word boundaries and keeps explicit newlines.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

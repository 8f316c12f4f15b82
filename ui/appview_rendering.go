package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	appmodel "peermind/model"
	"peermind/render"
)

var welcomeCards = [][2]string{
	{"Quick Answers", "Get instant responses to your questions"},
	{"Code Help", "Get assistance with coding problems"},
	{"Creative Ideas", "Brainstorm and explore new concepts"},
}

func (a AppView) contentWidth() int {
	w := a.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	a.viewport.SetContent(a.transcriptView())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func (a *AppView) transcriptView() string {
	messages := a.dataModel.Messages
	if len(messages) == 0 && !a.dataModel.Loading {
		return a.welcomeView()
	}

	var b strings.Builder
	for i, msg := range messages {
		if msg.Role == appmodel.RoleUser {
			b.WriteString(UserStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrapText(msg.Content, a.contentWidth()))
		} else {
			b.WriteString(AssistantStyle.Render("peermind"))
			b.WriteString("\n")
			b.WriteString(a.renderAssistant(i, msg.Content))
		}
		b.WriteString("\n\n")
	}

	if a.dataModel.Loading {
		b.WriteString(a.loadingSpinner.View() + " " + DimStyle.Render("Thinking..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *AppView) renderAssistant(index int, content string) string {
	if a.rendered == nil || a.renderedWidth != a.contentWidth() {
		a.rendered = map[int]string{}
		a.renderedWidth = a.contentWidth()
	}
	if out, ok := a.rendered[index]; ok {
		return out
	}
	out := render.Message(content, a.contentWidth())
	a.rendered[index] = out
	return out
}

func (a AppView) welcomeView() string {
	w := a.contentWidth()
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)

	lines := []string{
		"",
		center.Render(TitleStyle.Render("Welcome to peermind")),
		center.Render(DimStyle.Render("Start a conversation and explore what I can help you with")),
		"",
	}
	for _, card := range welcomeCards {
		lines = append(lines,
			center.Render(lipgloss.NewStyle().Bold(true).Render(card[0])),
			center.Render(DimStyle.Render(card[1])),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func (a AppView) renderLayout() string {
	header := TitleStyle.Render("peermind") + DimStyle.Render("  "+a.relayURL)
	rule := DimStyle.Render(strings.Repeat("─", a.width))

	var input string
	if a.dataModel.Loading {
		input = DimStyle.Render("> " + "Thinking...")
	} else {
		input = a.input.View()
	}

	return strings.Join([]string{
		header,
		rule,
		a.viewport.View(),
		rule,
		input,
		a.footerView(),
	}, "\n")
}

func (a AppView) footerView() string {
	if a.copied {
		return CopiedStyle.Render("Copied!")
	}
	if a.status != "" {
		return StatusStyle.Render(truncate(a.status, a.width))
	}
	return FormatFooter("Enter", "Send", "Ctrl+H", "History", "Ctrl+Y", "Copy code", "Esc", "Quit")
}

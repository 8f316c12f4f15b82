package render

import (
	"regexp"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/lipgloss"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

const minWidth = 20

var (
	mdLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

	codeLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")).
			Bold(true).
			Padding(0, 1)

	codeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// Render draws segments at the given terminal width.
func Render(segments []Segment, width int) string {
	if width < minWidth {
		width = minWidth
	}

	var parts []string
	for _, s := range segments {
		switch s.Kind {
		case KindCode:
			parts = append(parts, renderCode(s, width))
		default:
			if strings.TrimSpace(s.Text) == "" {
				continue
			}
			parts = append(parts, renderText(s.Text, width))
		}
	}
	return strings.Join(parts, "\n")
}

// Message splits and renders a reply in one step.
func Message(text string, width int) string {
	return Render(Split(text), width)
}

func renderText(text string, width int) string {
	// Links become bare URLs so the terminal can detect them.
	text = mdLinkRegex.ReplaceAllString(text, "$2")

	// Autolink off keeps plain URLs as plain text.
	p := parser.NewWithExtensions(markdown.Extensions() &^ parser.Autolink)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(text))
	rendered := string(gomarkdown.Render(doc, r))

	return strings.Trim(rendered, "\n")
}

func renderCode(s Segment, width int) string {
	label := codeLabelStyle.Render(s.Language)
	body := codeBoxStyle.Width(width - 2).Render(s.Code)
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"peermind/archive"
)

const emptyHistoryText = "No saved conversations yet"

// HistoryLister supplies the stored conversations, oldest first.
type HistoryLister interface {
	List() []archive.StoredConversation
}

// HistoryDialog lists archived conversations and opens them on the
// public gateway.
type HistoryDialog struct {
	visible bool

	source  HistoryLister
	gateway func(hash string) string

	conversations []archive.StoredConversation
	filtered      []archive.StoredConversation
	selected      int

	filterMode  bool
	filterInput textinput.Model

	status string
}

func NewHistoryDialog(source HistoryLister, gateway func(hash string) string) HistoryDialog {
	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = 64

	return HistoryDialog{
		source:      source,
		gateway:     gateway,
		filterInput: filterInput,
	}
}

func (h HistoryDialog) Visible() bool {
	return h.visible
}

// Open reloads the list; the newest conversation is selected.
func (h HistoryDialog) Open() HistoryDialog {
	h.visible = true
	h.filterMode = false
	h.filterInput.SetValue("")
	h.filterInput.Blur()
	h.status = ""

	h.conversations = nil
	if h.source != nil {
		list := h.source.List()
		// newest first
		h.conversations = make([]archive.StoredConversation, len(list))
		for i, c := range list {
			h.conversations[len(list)-1-i] = c
		}
	}
	h.filtered = h.conversations
	h.selected = 0
	return h
}

func (h HistoryDialog) Close() HistoryDialog {
	h.visible = false
	h.filterMode = false
	h.filterInput.Blur()
	return h
}

// Items returns the conversations currently shown.
func (h HistoryDialog) Items() []archive.StoredConversation {
	return h.filtered
}

func (h HistoryDialog) Selected() (archive.StoredConversation, bool) {
	if h.selected < 0 || h.selected >= len(h.filtered) {
		return archive.StoredConversation{}, false
	}
	return h.filtered[h.selected], true
}

func (h HistoryDialog) Update(msg tea.Msg) (HistoryDialog, tea.Cmd) {
	switch msg := msg.(type) {
	case urlOpenedMsg:
		if msg.Err != nil {
			h.status = fmt.Sprintf("Could not open browser: %v", msg.Err)
		} else {
			h.status = "Opened " + msg.URL
		}
		return h, nil

	case tea.KeyMsg:
		if h.filterMode {
			return h.updateFilter(msg)
		}

		switch msg.String() {
		case "esc", "q", "ctrl+h":
			return h.Close(), nil
		case "/":
			h.filterMode = true
			h.filterInput.SetValue("")
			h.filtered = h.conversations
			h.selected = 0
			focus := h.filterInput.Focus()
			return h, tea.Batch(focus, textinput.Blink)
		case "j", "down":
			h.moveSelection(1)
		case "k", "up":
			h.moveSelection(-1)
		case "enter":
			return h, h.openSelected()
		}
	}
	return h, nil
}

func (h HistoryDialog) updateFilter(msg tea.KeyMsg) (HistoryDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		h.filterMode = false
		h.filterInput.Blur()
		h.filterInput.SetValue("")
		h.filtered = h.conversations
		h.selected = 0
		return h, nil
	case "enter":
		h.filterMode = false
		h.filterInput.Blur()
		return h, h.openSelected()
	case "down":
		h.moveSelection(1)
		return h, nil
	case "up":
		h.moveSelection(-1)
		return h, nil
	}

	var cmd tea.Cmd
	h.filterInput, cmd = h.filterInput.Update(msg)
	h.applyFilter(h.filterInput.Value())
	return h, cmd
}

func (h *HistoryDialog) applyFilter(query string) {
	if query == "" {
		h.filtered = h.conversations
	} else {
		targets := make([]string, len(h.conversations))
		for i, c := range h.conversations {
			targets[i] = formatStamp(c) + " " + c.Preview
		}

		matches := fuzzy.Find(query, targets)
		h.filtered = make([]archive.StoredConversation, len(matches))
		for i, match := range matches {
			h.filtered[i] = h.conversations[match.Index]
		}
	}

	if h.selected >= len(h.filtered) {
		h.selected = len(h.filtered) - 1
	}
	if h.selected < 0 {
		h.selected = 0
	}
}

func (h *HistoryDialog) moveSelection(delta int) {
	next := h.selected + delta
	if next < 0 || next >= len(h.filtered) {
		return
	}
	h.selected = next
}

func (h HistoryDialog) openSelected() tea.Cmd {
	c, ok := h.Selected()
	if !ok || h.gateway == nil {
		return nil
	}
	return openURLCmd(h.gateway(c.Hash))
}

func formatStamp(c archive.StoredConversation) string {
	return c.Time().Local().Format("2006-01-02 15:04:05")
}

func (h HistoryDialog) View(width, height int) string {
	modalWidth := modalWidthFor(80, width)

	var lines []string
	if h.filterMode || h.filterInput.Value() != "" {
		lines = append(lines, h.filterInput.View(), "")
	}

	if len(h.conversations) == 0 {
		lines = append(lines, DimStyle.Render(emptyHistoryText))
	} else if len(h.filtered) == 0 {
		lines = append(lines, DimStyle.Render("No matches"))
	} else {
		// two rows per entry plus modal chrome
		visible := (height - 12) / 3
		if visible < 1 {
			visible = 1
		}
		start := 0
		if h.selected >= visible {
			start = h.selected - visible + 1
		}
		end := start + visible
		if end > len(h.filtered) {
			end = len(h.filtered)
		}

		for i := start; i < end; i++ {
			c := h.filtered[i]
			marker := "  "
			stampStyle := DimStyle
			if i == h.selected {
				marker = SelectedStyle.Render("> ")
				stampStyle = SelectedStyle
			}
			lines = append(lines,
				marker+stampStyle.Render(formatStamp(c)),
				"  "+truncate(singleLine(c.Preview), modalWidth-4),
				"",
			)
		}
		if len(h.filtered) > visible {
			lines = append(lines, DimStyle.Render(fmt.Sprintf("%d of %d", h.selected+1, len(h.filtered))))
		}
	}

	if h.status != "" {
		lines = append(lines, "", StatusStyle.Render(truncate(h.status, modalWidth)))
	}

	footer := FormatFooter("j/k", "Navigate", "/", "Filter", "Enter", "Open", "Esc", "Close")
	return RenderThreeSectionModal("Saved Conversations", lines, footer, ModalTypeInfo, modalWidth, width, height)
}

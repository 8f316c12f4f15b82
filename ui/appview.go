package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	appmodel "peermind/model"
	"peermind/render"
)

const inputPlaceholder = "Ask peermind anything..."

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport       viewport.Model
	input          textinput.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	// Rendered assistant turns, keyed by message index for renderedWidth
	rendered      map[int]string
	renderedWidth int

	// History dialog
	history HistoryDialog

	// Code copy
	clipboard render.Clipboard
	copied    bool
	copySeq   int

	relayURL string
	status   string
}

func NewAppView(dataModel *appmodel.Model, history HistoryDialog, clipboard render.Clipboard, relayURL string) AppView {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	if clipboard == nil {
		clipboard = render.SystemClipboard{}
	}

	return AppView{
		dataModel:      dataModel,
		viewport:       viewport.New(0, 0),
		input:          ti,
		loadingSpinner: sp,
		rendered:       map[int]string{},
		history:        history,
		clipboard:      clipboard,
		relayURL:       relayURL,
	}
}

func (a AppView) Init() tea.Cmd {
	return textinput.Blink
}

// Model exposes the chat state (used by tests and main).
func (a AppView) Model() *appmodel.Model {
	return a.dataModel
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading peermind..."
	}

	if a.history.Visible() {
		return a.history.View(a.width, a.height)
	}

	return a.renderLayout()
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	appmodel "peermind/model"
	"peermind/render"
)

const (
	headerHeight = 2
	footerHeight = 3
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		if a.history.Visible() {
			var cmd tea.Cmd
			a.history, cmd = a.history.Update(msg)
			if msg.String() == "ctrl+c" {
				return a.quit()
			}
			return a, cmd
		}
		return a.handleKey(msg)

	case urlOpenedMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd

	case appmodel.ReplyMsg:
		cmd := a.dataModel.HandleReply(msg)
		a.input.Focus()
		a.updateViewportContent(true)
		return a, cmd

	case appmodel.ConversationSavedMsg:
		a.dataModel.HandleSaved(msg)
		if msg.Hash != "" {
			a.status = "Conversation saved to IPFS: " + msg.Hash
		}
		return a, nil

	case render.CopiedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Copy failed: %v", msg.Err)
			return a, nil
		}
		a.copied = true
		a.copySeq++
		return a, render.ResetAfter(a.copySeq)

	case render.CopyResetMsg:
		if msg.Seq == a.copySeq {
			a.copied = false
		}
		return a, nil

	case spinner.TickMsg:
		// Ticks stop between requests; Submit starts them again.
		if !a.dataModel.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(true)
		return a, cmd
	}

	return a, nil
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a.quit()

	case "ctrl+h":
		a.history = a.history.Open()
		return a, nil

	case "ctrl+y":
		return a, a.copyLastCode()

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case "enter":
		cmd := a.dataModel.Submit(a.input.Value())
		if cmd == nil {
			return a, nil
		}
		a.input.Reset()
		a.input.Blur()
		a.status = ""
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.loadingSpinner.Tick)
	}

	// Input is disabled while a reply is pending.
	if a.dataModel.Loading {
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a AppView) quit() (tea.Model, tea.Cmd) {
	a.dataModel.Quitting = true
	return a, tea.Quit
}

func (a *AppView) copyLastCode() tea.Cmd {
	content, ok := a.dataModel.LastAssistantContent()
	if !ok {
		a.status = "Nothing to copy yet"
		return nil
	}
	code, ok := render.LastCode(content)
	if !ok {
		a.status = "No code block in the last reply"
		return nil
	}
	return render.CopyCmd(a.clipboard, code)
}

func (a *AppView) resize() {
	a.viewport.Width = a.width
	h := a.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	a.viewport.Height = h
	a.input.Width = a.width - 4

	if a.renderedWidth != a.contentWidth() {
		a.rendered = map[int]string{}
		a.renderedWidth = a.contentWidth()
	}
}

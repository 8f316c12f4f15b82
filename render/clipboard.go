package render

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopiedFor is how long the "copied" indicator stays on.
const CopiedFor = 2 * time.Second

// Clipboard writes text to a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// CopiedMsg reports the outcome of a copy. Err is nil on success.
type CopiedMsg struct {
	Code string
	Err  error
}

// CopyResetMsg turns the "copied" indicator off. Seq matches the copy that
// scheduled it so an older timer cannot clear a newer indicator.
type CopyResetMsg struct {
	Seq int
}

// CopyCmd writes code to cb off the update loop.
func CopyCmd(cb Clipboard, code string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Code: code, Err: cb.WriteAll(code)}
	}
}

// ResetAfter schedules the indicator reset.
func ResetAfter(seq int) tea.Cmd {
	return tea.Tick(CopiedFor, func(time.Time) tea.Msg {
		return CopyResetMsg{Seq: seq}
	})
}

package model

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"peermind/config"
)

// Submit appends the user turn and returns the command that sends the
// transcript to the relay. Blank input or a pending request returns nil
// and leaves the state unchanged.
func (m *Model) Submit(input string) tea.Cmd {
	if strings.TrimSpace(input) == "" || m.Loading {
		return nil
	}

	m.Messages = append(m.Messages, Message{Role: RoleUser, Content: input})
	m.Loading = true

	if m.Client == nil {
		return func() tea.Msg {
			return ReplyMsg{Err: errNoClient}
		}
	}

	client := m.Client
	timeout := m.SendTimeout
	snapshot := append([]Message(nil), m.Messages...)
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		reply, err := client.Send(ctx, snapshot)
		return ReplyMsg{Content: reply, Err: err}
	}
}

// HandleReply appends the assistant turn (or the apology), clears the
// loading flag and returns the archive command when the transcript holds
// at least one exchange.
func (m *Model) HandleReply(msg ReplyMsg) tea.Cmd {
	content := msg.Content
	if msg.Err != nil {
		config.Log.Printf("[Chat] Relay request failed: %v", msg.Err)
		content = Apology
	}

	m.Messages = append(m.Messages, Message{Role: RoleAssistant, Content: content})
	m.Loading = false

	if CountExchanges(m.Messages) == 0 {
		return nil
	}
	return m.SaveConversation()
}

// SaveConversation archives a snapshot of the transcript off the update
// loop. It returns nil when archiving is disabled.
func (m *Model) SaveConversation() tea.Cmd {
	if m.Archiver == nil {
		return nil
	}

	archiver := m.Archiver
	snapshot := append([]Message(nil), m.Messages...)
	m.Saving = true
	return func() tea.Msg {
		return ConversationSavedMsg{Hash: archiver.Save(context.Background(), snapshot)}
	}
}

// HandleSaved records the outcome of SaveConversation. The transcript is
// never touched.
func (m *Model) HandleSaved(msg ConversationSavedMsg) {
	m.Saving = false
	if msg.Hash == "" {
		config.Debugf("[Chat] Conversation was not archived")
		return
	}
	m.LastHash = msg.Hash
	config.Debugf("[Chat] Conversation archived as %s", msg.Hash)
}

// LastAssistantContent returns the newest assistant turn.
func (m *Model) LastAssistantContent() (string, bool) {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Role == RoleAssistant {
			return m.Messages[i].Content, true
		}
	}
	return "", false
}

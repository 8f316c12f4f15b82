package model

// ReplyMsg carries the relay outcome for the pending user turn.
type ReplyMsg struct {
	Content string
	Err     error
}

// ConversationSavedMsg reports a finished archive attempt. Hash is "" when
// nothing was stored.
type ConversationSavedMsg struct {
	Hash string
}

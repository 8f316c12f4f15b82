// Package archive turns transcripts into uploadable payloads, stores them
// through an Uploader and records each upload in a client-local history.
//
// Every entry point is best-effort: failures are logged and reported as an
// empty hash, never as an error, so archiving can never break a chat.
package archive

import (
	"encoding/json"
	"fmt"
	"peermind/model"
	"strings"
)

// Pair is one user turn and the assistant reply that answered it.
type Pair struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Pairs groups a flat transcript into exchanges.
//
// Each user turn is paired with the first assistant turn after it. Turns of
// other roles are ignored, a trailing user turn with no reply is dropped,
// and consecutive user turns share the same following reply. For
// alternating transcripts this yields every exchange in order with no
// content lost.
func Pairs(messages []model.Message) []Pair {
	var pairs []Pair
	for i, msg := range messages {
		if msg.Role != model.RoleUser {
			continue
		}
		for _, next := range messages[i+1:] {
			if next.Role == model.RoleAssistant {
				pairs = append(pairs, Pair{User: msg.Content, Assistant: next.Content})
				break
			}
		}
	}
	return pairs
}

// FormatText renders pairs as numbered plain-text exchanges separated by a
// blank line.
func FormatText(pairs []Pair) string {
	blocks := make([]string, len(pairs))
	for i, p := range pairs {
		blocks[i] = fmt.Sprintf("Conversation %d:\nUser: %s\nAssistant: %s", i+1, p.User, p.Assistant)
	}
	return strings.Join(blocks, "\n\n")
}

type jsonPayload struct {
	Pairs     []Pair `json:"pairs"`
	Timestamp int64  `json:"timestamp"`
}

// FormatJSON renders pairs as an indented {"pairs": [...], "timestamp": ms} object.
func FormatJSON(pairs []Pair, timestampMillis int64) (string, error) {
	if pairs == nil {
		pairs = []Pair{}
	}
	data, err := json.MarshalIndent(jsonPayload{Pairs: pairs, Timestamp: timestampMillis}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation: %w", err)
	}
	return string(data), nil
}

package archive

import (
	"encoding/json"
	"fmt"
	"peermind/config"
	"time"
)

// HistoryKey is the fixed key the stored-conversation list lives under.
const HistoryKey = "lighthouse-conversations"

const previewRunes = 100

// KV is the key-value capability the history is stored in.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// StoredConversation records one successful upload.
type StoredConversation struct {
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Preview   string `json:"preview"`
}

// Time returns the upload time.
func (c StoredConversation) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// History is the list of uploaded conversations, read and written whole.
// Entries are never deduplicated or expired.
type History struct {
	kv KV
}

func NewHistory(kv KV) *History {
	return &History{kv: kv}
}

// List returns the stored conversations in insertion order. A missing or
// unreadable value reads as an empty list.
func (h *History) List() []StoredConversation {
	raw, ok, err := h.kv.Get(HistoryKey)
	if err != nil {
		config.Log.Printf("[Archive] Failed to read history: %v", err)
		return []StoredConversation{}
	}
	if !ok || raw == "" {
		return []StoredConversation{}
	}

	var list []StoredConversation
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		config.Log.Printf("[Archive] Ignoring corrupt history: %v", err)
		return []StoredConversation{}
	}
	if list == nil {
		list = []StoredConversation{}
	}
	return list
}

// Add appends an entry built from hash and the uploaded text.
func (h *History) Add(hash, text string, at time.Time) (StoredConversation, error) {
	entry := StoredConversation{
		Hash:      hash,
		Timestamp: at.UnixMilli(),
		Preview:   Preview(text),
	}

	list := append(h.List(), entry)
	data, err := json.Marshal(list)
	if err != nil {
		return entry, fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := h.kv.Set(HistoryKey, string(data)); err != nil {
		return entry, fmt.Errorf("failed to write history: %w", err)
	}
	return entry, nil
}

// Preview returns the first 100 characters of text followed by "...".
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewRunes {
		runes = runes[:previewRunes]
	}
	return string(runes) + "..."
}

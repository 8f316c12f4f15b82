package archive

import (
	"context"
	"errors"
	"fmt"
	"peermind/config"
	"peermind/lighthouse"
	"peermind/model"
	"sync"
	"time"
)

// Format selects the payload encoding.
type Format string

const (
	FormatPlainText Format = "text"
	FormatPairsJSON Format = "json"
)

// DefaultAsyncTimeout bounds a detached upload.
const DefaultAsyncTimeout = 60 * time.Second

// Uploader stores a text payload and returns its content hash.
type Uploader interface {
	UploadText(ctx context.Context, text, apiKey, name string) (*lighthouse.UploadResult, error)
}

// Archiver uploads transcripts. It is safe for concurrent use.
type Archiver struct {
	uploader Uploader
	history  *History // nil: uploads are not recorded locally
	apiKey   string
	format   Format

	// Now is the clock used for filenames and history timestamps.
	Now func() time.Time
	// AsyncTimeout bounds each SaveAsync upload.
	AsyncTimeout time.Duration

	wg sync.WaitGroup
}

// NewArchiver creates an archiver. history may be nil.
func NewArchiver(uploader Uploader, history *History, apiKey string, format Format) *Archiver {
	if format == "" {
		format = FormatPlainText
	}
	return &Archiver{
		uploader:     uploader,
		history:      history,
		apiKey:       apiKey,
		format:       format,
		Now:          time.Now,
		AsyncTimeout: DefaultAsyncTimeout,
	}
}

// Save uploads the transcript's exchanges and records the hash in the
// history. It returns the hash, or "" when anything fails. Errors are
// logged and never returned. messages is not modified.
func (a *Archiver) Save(ctx context.Context, messages []model.Message) (hash string) {
	defer func() {
		if r := recover(); r != nil {
			config.Log.Printf("[Archive] Conversation not saved: uploader panicked: %v", r)
			hash = ""
		}
	}()

	hash, err := a.save(ctx, messages)
	if err != nil {
		config.Log.Printf("[Archive] Conversation not saved: %v", err)
		return ""
	}
	return hash
}

// SaveAsync runs Save on a detached goroutine with its own timeout. The
// upload happens at most once; the outcome is only logged.
func (a *Archiver) SaveAsync(messages []model.Message) {
	snapshot := append([]model.Message(nil), messages...)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.AsyncTimeout)
		defer cancel()

		if hash := a.Save(ctx, snapshot); hash != "" {
			config.Log.Printf("[Archive] Background upload stored %s", hash)
		}
	}()
}

// Wait blocks until all SaveAsync uploads have finished.
func (a *Archiver) Wait() {
	a.wg.Wait()
}

func (a *Archiver) save(ctx context.Context, messages []model.Message) (string, error) {
	if a == nil || a.uploader == nil {
		return "", errors.New("archiving is not configured")
	}
	if a.apiKey == "" {
		return "", fmt.Errorf("%s: %w", config.EnvLighthouseKey, lighthouse.ErrMissingAPIKey)
	}

	pairs := Pairs(messages)
	if len(pairs) == 0 {
		return "", errors.New("transcript has no complete exchange")
	}

	now := a.Now()
	payload, name, err := a.encode(pairs, now)
	if err != nil {
		return "", err
	}

	config.Debugf("[Archive] Uploading %d pairs as %s (%d bytes)", len(pairs), name, len(payload))
	res, err := a.uploader.UploadText(ctx, payload, a.apiKey, name)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if res == nil || res.Hash == "" {
		return "", errors.New("upload returned no hash")
	}

	if a.history != nil {
		if _, err := a.history.Add(res.Hash, payload, now); err != nil {
			// The upload itself succeeded; keep the hash.
			config.Log.Printf("[Archive] Stored %s but could not record it: %v", res.Hash, err)
		}
	}

	return res.Hash, nil
}

func (a *Archiver) encode(pairs []Pair, now time.Time) (payload, name string, err error) {
	millis := now.UnixMilli()
	switch a.format {
	case FormatPairsJSON:
		payload, err = FormatJSON(pairs, millis)
		if err != nil {
			return "", "", err
		}
		return payload, fmt.Sprintf("conversation-%d.json", millis), nil
	default:
		return FormatText(pairs), fmt.Sprintf("conversation-%d", millis), nil
	}
}

package model

import (
	"context"
	"errors"
	"time"

	"peermind/config"
)

// Apology replaces the assistant turn when the relay call fails.
const Apology = "Sorry, I encountered an error. Please try again."

// DefaultSendTimeout bounds one relay round trip.
const DefaultSendTimeout = 2 * time.Minute

var errNoClient = errors.New("no relay client configured")

// RelayClient sends a transcript to the relay and returns the reply.
type RelayClient interface {
	Send(ctx context.Context, messages []Message) (string, error)
}

// Archiver persists a transcript and returns the content hash, or "" when
// the transcript was not stored. It never fails loudly.
type Archiver interface {
	Save(ctx context.Context, messages []Message) string
}

// Model holds the chat panel's data and business logic state
type Model struct {
	// Core dependencies
	Config   *config.Config
	Client   RelayClient
	Archiver Archiver // nil disables archiving

	// Application data
	Messages []Message
	LastHash string

	// Runtime state (not UI)
	Loading     bool
	Saving      bool
	Quitting    bool
	SendTimeout time.Duration
}

// NewModel creates a new Model. archiver may be nil.
func NewModel(cfg *config.Config, client RelayClient, archiver Archiver) *Model {
	return &Model{
		Config:      cfg,
		Client:      client,
		Archiver:    archiver,
		SendTimeout: DefaultSendTimeout,
	}
}

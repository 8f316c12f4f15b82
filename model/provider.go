package model

import "context"

// Provider abstracts the upstream completion API the relay forwards to.
//
// This interface is defined in the model package (not provider package) so
// the relay can depend on it without importing provider implementations.
type Provider interface {
	// Complete sends the transcript and returns the assistant reply text.
	// Upstream non-2xx responses are returned as *provider.UpstreamError.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Name returns the provider ID ("nearai", "gemini").
	Name() string

	// GetModel returns the model used for API calls.
	GetModel() string
}

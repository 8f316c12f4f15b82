// Package provider implements the upstream completion APIs the relay
// forwards transcripts to.
//
// Exactly one provider is active per relay process. It is chosen from
// configuration at startup and never negotiated per request:
//   - ProviderTypeNearAI: NEAR AI's OpenAI-compatible chat completions API,
//     called through the official OpenAI Go SDK
//   - ProviderTypeGemini: Google's generateContent API, called over plain
//     HTTP with request-shape translation and a tolerant response extractor
//
// Both implementations satisfy model.Provider and report upstream non-2xx
// responses as *UpstreamError so the relay can pass the status through.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:   provider.ProviderTypeGemini,
//	    APIKey: os.Getenv("GEMINI_API_KEY"),
//	})
//	if err != nil {
//	    // handle error
//	}
//	reply, err := p.Complete(ctx, messages)
package provider

import (
	"errors"
	"fmt"
)

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeNearAI ProviderType = "nearai"
	ProviderTypeGemini ProviderType = "gemini"
)

// Config holds provider-specific configuration.
type Config struct {
	Type         ProviderType
	BaseURL      string
	Model        string
	APIKey       string
	SystemPrompt string // Gemini only: injected as a leading user turn
}

// ErrMissingAPIKey is returned by constructors when no credential is set.
var ErrMissingAPIKey = errors.New("API key is required")

// UpstreamError reports a non-2xx response from the upstream API.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: status %d", e.Provider, e.StatusCode)
}

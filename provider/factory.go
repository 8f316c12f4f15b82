package provider

import (
	"fmt"
	"peermind/config"
	"peermind/model"
)

// NewProvider creates a provider based on configuration.
//
// Returns an error if:
//   - The provider type is unknown
//   - The base URL is not an http(s) URL
//   - The API key is missing (wraps ErrMissingAPIKey)
//
// Example:
//
//	cfg := provider.Config{
//	    Type:   provider.ProviderTypeNearAI,
//	    APIKey: "...",
//	}
//	p, err := provider.NewProvider(cfg)
func NewProvider(cfg Config) (model.Provider, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	// Constructors return typed pointers; check err before converting so a
	// failed construction yields a nil interface.
	switch cfg.Type {
	case ProviderTypeNearAI:
		p, err := NewNearAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderTypeGemini:
		p, err := NewGeminiProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.SystemPrompt)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		// unreachable after ValidateConfig
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a ProviderType.
// Aliases resolve through config.CanonicalProvider so the credential lookup
// and the factory always agree.
//
// Mappings:
//   - "nearai", "near", "near-ai" → ProviderTypeNearAI
//   - "gemini", "google" → ProviderTypeGemini
//
// For unknown IDs, returns the ID cast as ProviderType (factory will error).
func MapProviderIDToType(id string) ProviderType {
	return ProviderType(config.CanonicalProvider(id))
}

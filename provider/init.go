package provider

import (
	"errors"
	"fmt"
	"peermind/config"
	"peermind/model"
)

// InitializeProvider creates the single provider the relay forwards to.
//
// The provider type comes from configuration and is fixed for the life of
// the process. A missing credential is not fatal: the error is returned so
// the relay can keep serving and answer every request with a configuration
// error instead of crashing at startup.
//
// Example:
//
//	p, err := provider.InitializeProvider(cfg)
//	if err != nil {
//	    // p is nil; relay reports err per request
//	}
func InitializeProvider(cfg *config.Config) (model.Provider, error) {
	providerType := MapProviderIDToType(cfg.ProviderType)

	p, err := NewProvider(Config{
		Type:         providerType,
		BaseURL:      cfg.ProviderBaseURL,
		Model:        cfg.ProviderModel,
		APIKey:       cfg.ProviderAPIKey,
		SystemPrompt: cfg.ProviderSystemPrompt,
	})
	if errors.Is(err, ErrMissingAPIKey) {
		return nil, fmt.Errorf("%s is not configured: %w", cfg.ProviderKeyEnv(), err)
	}
	if err != nil {
		return nil, err
	}

	config.Debugf("[Provider] Initialized %s provider (model: %s)", p.Name(), p.GetModel())
	return p, nil
}

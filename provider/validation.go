package provider

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateConfig checks a provider configuration before any client is
// built. A missing key is reported as ErrMissingAPIKey so callers can tell
// "not configured" apart from "misconfigured".
func ValidateConfig(cfg Config) error {
	switch cfg.Type {
	case ProviderTypeNearAI, ProviderTypeGemini:
	default:
		return fmt.Errorf("unknown provider type: %s", cfg.Type)
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid %s base URL %q", cfg.Type, cfg.BaseURL)
		}
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%s: %w", cfg.Type, ErrMissingAPIKey)
	}

	return nil
}

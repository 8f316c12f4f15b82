package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"peermind/config"
	"peermind/model"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.0-flash"

	// DefaultSystemPrompt is sent as the synthetic first user turn.
	DefaultSystemPrompt = "You are peermind, a friendly and knowledgeable AI companion. " +
		"Answer clearly and concisely. Use fenced code blocks with a language tag for code."
)

// GeminiProvider implements model.Provider against the generateContent API.
type GeminiProvider struct {
	client       *http.Client
	baseURL      string
	model        string
	apiKey       string
	systemPrompt string
}

// NewGeminiProvider creates a new Gemini provider instance.
//
// Parameters:
//   - baseURL: API base including the revision (default: ".../v1beta")
//   - apiKey: API key, sent as the "key" query parameter (required)
//   - model: model ID (default: "gemini-2.0-flash")
//   - systemPrompt: leading instruction (default: DefaultSystemPrompt)
func NewGeminiProvider(baseURL, apiKey, model, systemPrompt string) (*GeminiProvider, error) {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	return &GeminiProvider{
		client:       &http.Client{},
		baseURL:      strings.TrimRight(baseURL, "/"),
		model:        model,
		apiKey:       apiKey,
		systemPrompt: systemPrompt,
	}, nil
}

// SetHTTPClient replaces the HTTP client (used by tests).
func (p *GeminiProvider) SetHTTPClient(client *http.Client) {
	p.client = client
}

func (p *GeminiProvider) endpoint() string {
	q := url.Values{}
	q.Set("key", p.apiKey)
	return fmt.Sprintf("%s/models/%s:generateContent?%s", p.baseURL, url.PathEscape(p.model), q.Encode())
}

// Complete implements model.Provider.Complete.
func (p *GeminiProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	reqBody, err := json.Marshal(GeminiRequest{
		Contents: ConvertToGeminiContents(messages, p.systemPrompt),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal Gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Provider: "Gemini", StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("Gemini returned malformed JSON (%d bytes)", len(body))
	}

	reply := ExtractReply(body)
	config.Debugf("[Gemini] Extracted %d chars from %d byte response", len(reply), len(body))
	return reply, nil
}

// Name implements model.Provider.Name.
func (p *GeminiProvider) Name() string {
	return string(ProviderTypeGemini)
}

// GetModel implements model.Provider.GetModel.
func (p *GeminiProvider) GetModel() string {
	return p.model
}

package provider

import (
	"context"
	"errors"
	"fmt"
	"peermind/config"
	"peermind/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultNearAIBaseURL = "https://api.near.ai/v1"
	DefaultNearAIModel   = "fireworks::accounts/fireworks/models/mixtral-8x22b-instruct"

	nearAITemperature = 1.0
	nearAIMaxTokens   = 1024
)

// NearAIProvider implements model.Provider against NEAR AI's
// OpenAI-compatible chat completions endpoint using the official OpenAI Go SDK.
type NearAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewNearAIProvider creates a new NEAR AI provider instance.
//
// Parameters:
//   - baseURL: API base URL (default: "https://api.near.ai/v1")
//   - apiKey: bearer credential (required)
//   - model: model ID (default: Mixtral 8x22B instruct on Fireworks)
//
// SDK retries are disabled: the relay makes exactly one upstream attempt.
func NewNearAIProvider(baseURL, apiKey, model string, opts ...option.RequestOption) (*NearAIProvider, error) {
	if baseURL == "" {
		baseURL = DefaultNearAIBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("NEAR AI: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultNearAIModel
	}

	clientOpts := append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &NearAIProvider{
		client:  openai.NewClient(clientOpts...),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Complete implements model.Provider.Complete with a single non-streaming request.
func (p *NearAIProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(messages),
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(nearAITemperature),
		MaxTokens:   openai.Int(nearAIMaxTokens),
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			body := apiErr.RawJSON()
			if body == "" {
				body = apiErr.Error()
			}
			return "", &UpstreamError{Provider: "NEAR AI", StatusCode: apiErr.StatusCode, Body: body}
		}
		return "", fmt.Errorf("NEAR AI request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		config.Debugf("[NearAI] Completion %s returned no choices", completion.ID)
		return "", nil
	}

	return completion.Choices[0].Message.Content, nil
}

// Name implements model.Provider.Name.
func (p *NearAIProvider) Name() string {
	return string(ProviderTypeNearAI)
}

// GetModel implements model.Provider.GetModel.
func (p *NearAIProvider) GetModel() string {
	return p.model
}

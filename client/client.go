// Package client is the chat panel's side of the relay wire protocol.
package client

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
	"time"
)

// NoResponse is the reply shown when the relay answers without a choice.
const NoResponse = "No response received"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// StatusError is returned for every non-2xx relay response.
type StatusError struct {
	StatusCode int
	Message    string // the relay's {error} field, when present
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Message)
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = config.DefaultRelayURL
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid relay URL %q", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// SetHTTPClient replaces the HTTP client (used by tests).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send posts the transcript to the relay and returns the assistant reply.
func (c *Client) Send(ctx context.Context, messages []model.Message) (string, error) {
	if messages == nil {
		messages = []model.Message{}
	}
	body, err := json.Marshal(model.ChatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e model.ErrorResponse
		_ = json.Unmarshal(data, &e)
		config.Debugf("[Client] Relay status %d (request %s): %s", resp.StatusCode, resp.Header.Get("X-Request-Id"), string(data))
		return "", &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	var chat model.ChatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return "", fmt.Errorf("failed to decode relay response: %w", err)
	}

	reply := chat.FirstContent()
	if reply == "" {
		return NoResponse, nil
	}
	return reply, nil
}

// Package lighthouse uploads text payloads to the Lighthouse IPFS pinning
// service and builds public gateway URLs for the returned content hashes.
package lighthouse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	DefaultUploadURL  = "https://node.lighthouse.storage/api/v0/add"
	DefaultGatewayURL = "https://gateway.lighthouse.storage"
)

// ErrMissingAPIKey is returned when UploadText is called without a key.
var ErrMissingAPIKey = errors.New("lighthouse API key is missing")

// UploadResult is the add endpoint's response.
type UploadResult struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Client talks to the Lighthouse node API.
type Client struct {
	uploadURL  string
	gatewayURL string
	httpClient *http.Client
}

// NewClient creates a client. Empty URLs select the public defaults.
func NewClient(uploadURL, gatewayURL string) *Client {
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	if gatewayURL == "" {
		gatewayURL = DefaultGatewayURL
	}
	return &Client{
		uploadURL:  uploadURL,
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetHTTPClient replaces the HTTP client (used by tests).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// UploadText stores text as a file called name and returns its content hash.
func (c *Client) UploadText(ctx context.Context, text, apiKey, name string) (*UploadResult, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.WriteString(part, text); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.Hash == "" {
		return nil, fmt.Errorf("upload response has no hash: %s", strings.TrimSpace(string(body)))
	}

	return &result, nil
}

// GatewayURL returns the public URL for hash.
func (c *Client) GatewayURL(hash string) string {
	return GatewayURL(c.gatewayURL, hash)
}

// GatewayURL joins a gateway base and a content hash: <gateway>/ipfs/<hash>.
func GatewayURL(gateway, hash string) string {
	if gateway == "" {
		gateway = DefaultGatewayURL
	}
	return strings.TrimRight(gateway, "/") + "/ipfs/" + hash
}

// Package gen calls the script-generation service: free-form dialogue
// generation and the SEO-metadata variant with its JSON response handling.
package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrMissingCredential indicates the generation credential was not
	// configured.
	ErrMissingCredential = errors.New("script generation credential not configured")

	// ErrNoText indicates a success response without generated text.
	ErrNoText = errors.New("generation response contained no text")
)

// DefaultModel is the text model requested when none is configured.
const DefaultModel = "dialogue-writer-1"

// ClientConfig configures the generation client.
type ClientConfig struct {
	Endpoint   string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client calls the script-generation service.
type Client struct {
	endpoint string
	key      string
	model    string
	http     *http.Client
}

// NewClient validates the credential and builds a client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{endpoint: cfg.Endpoint, key: cfg.APIKey, model: cfg.Model, http: httpClient}, nil
}

// Model returns the configured text model name.
func (c *Client) Model() string { return c.model }

type generateBody struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type generateReply struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate submits a prompt and returns the raw generated text.
// responseFormat is "" for prose or "json" when the caller will parse the
// reply as JSON.
func (c *Client) Generate(ctx context.Context, prompt, responseFormat string) (string, error) {
	payload, err := json.Marshal(generateBody{
		Model:          c.model,
		Prompt:         prompt,
		ResponseFormat: responseFormat,
	})
	if err != nil {
		return "", fmt.Errorf("encoding generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var reply generateReply
	decodeErr := json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && reply.Error != nil && reply.Error.Message != "" {
			return "", fmt.Errorf("generation provider: %s", reply.Error.Message)
		}
		return "", fmt.Errorf("generation provider: %s", resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decoding generation response: %w", decodeErr)
	}
	if reply.Text == "" {
		return "", ErrNoText
	}
	return reply.Text, nil
}

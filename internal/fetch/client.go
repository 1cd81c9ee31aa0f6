// Package fetch calls the content-fetch service that turns a web page into
// markdown, and reduces that markdown to plain text for prompt building.
package fetch

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
	// ErrMissingCredential indicates the fetch credential was not configured.
	ErrMissingCredential = errors.New("content fetch credential not configured")

	// ErrNoMarkdown indicates a success response without the markdown field.
	ErrNoMarkdown = errors.New("content fetch returned no markdown")
)

// ClientConfig configures the content-fetch client.
type ClientConfig struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// Client calls the content-fetch service.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

// NewClient validates the credential and builds a client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: cfg.Endpoint, key: cfg.APIKey, http: httpClient}, nil
}

type scrapeReply struct {
	Success bool `json:"success"`
	Data    *struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
	Error string `json:"error"`
}

// Scrape fetches url through the service and returns its markdown rendering.
func (c *Client) Scrape(ctx context.Context, url string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return "", fmt.Errorf("encoding fetch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building fetch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("content fetch failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var reply scrapeReply
	decodeErr := json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && reply.Error != "" {
			return "", fmt.Errorf("content fetch: %s", reply.Error)
		}
		return "", fmt.Errorf("content fetch: %s", resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decoding fetch response: %w", decodeErr)
	}
	if !reply.Success || reply.Data == nil || reply.Data.Markdown == "" {
		if reply.Error != "" {
			return "", fmt.Errorf("content fetch: %s", reply.Error)
		}
		return "", ErrNoMarkdown
	}
	return reply.Data.Markdown, nil
}

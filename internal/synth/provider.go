// Package synth drives the speech synthesis service: a rate-limited HTTP
// client for the provider API, the codec adapter that turns returned
// payloads into playable artifacts, and the orchestrator that sequences a
// whole-podcast synthesis run.
package synth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Encoding is the audio encoding requested from the provider.
type Encoding string

const (
	// EncodingMP3 asks for a ready-to-play compressed container.
	EncodingMP3 Encoding = "MP3"
	// EncodingPCM asks for raw 16-bit linear PCM that must be containerized.
	EncodingPCM Encoding = "LINEAR16"
)

// VoiceAssignment maps one speaker label to a provider voice ID for joint
// multi-voice synthesis.
type VoiceAssignment struct {
	Speaker string `json:"speaker"`
	Voice   string `json:"voice"`
}

// Request is one synthesis call. Exactly one of Voice (single-voice) or
// Speakers (joint multi-voice) is set.
type Request struct {
	Text     string
	Voice    string
	Speakers []VoiceAssignment
	Encoding Encoding
}

// Response is the decoded provider payload.
type Response struct {
	Audio []byte
	MIME  string
}

// Provider issues synthesis calls. The HTTP client below is the production
// implementation; tests substitute fakes.
type Provider interface {
	Synthesize(ctx context.Context, req Request) (*Response, error)
}

// ErrMissingCredential indicates the synthesis credential was not configured.
var ErrMissingCredential = errors.New("speech synthesis credential not configured")

// ClientConfig configures the provider HTTP client.
type ClientConfig struct {
	Endpoint string
	APIKey   string

	// RequestsPerMinute caps the call rate to avoid provider throttling.
	// Defaults to 30.
	RequestsPerMinute int

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is the production provider implementation.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient validates the credential and builds a rate-limited client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 30
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		endpoint: cfg.Endpoint,
		key:      cfg.APIKey,
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
	}, nil
}

type synthesizeBody struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice *struct {
		Name string `json:"name"`
	} `json:"voice,omitempty"`
	Speakers    []VoiceAssignment `json:"speakers,omitempty"`
	AudioConfig struct {
		Encoding        Encoding `json:"encoding"`
		SampleRateHertz int      `json:"sampleRateHertz,omitempty"`
	} `json:"audioConfig"`
}

type synthesizeReply struct {
	AudioContent string `json:"audioContent"`
	MIMEType     string `json:"mimeType"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize issues one synthesis call and decodes the base64 payload.
// Provider error bodies are surfaced verbatim; a success response without
// audio content is reported as ErrNoAudioContent.
func (c *Client) Synthesize(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := synthesizeBody{}
	body.Input.Text = req.Text
	if req.Voice != "" {
		body.Voice = &struct {
			Name string `json:"name"`
		}{Name: req.Voice}
	}
	body.Speakers = req.Speakers
	body.AudioConfig.Encoding = req.Encoding
	if req.Encoding == EncodingPCM {
		body.AudioConfig.SampleRateHertz = 24000
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building synthesis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("synthesis call failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var reply synthesizeReply
	decodeErr := json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode != http.StatusOK {
		// Prefer the provider's structured message over the status text.
		if decodeErr == nil && reply.Error != nil && reply.Error.Message != "" {
			return nil, fmt.Errorf("synthesis provider: %s", reply.Error.Message)
		}
		return nil, fmt.Errorf("synthesis provider: %s", resp.Status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding synthesis response: %w", decodeErr)
	}
	if reply.AudioContent == "" {
		return nil, ErrNoAudioContent
	}

	audio, err := base64.StdEncoding.DecodeString(reply.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decoding audio payload: %w", err)
	}
	return &Response{Audio: audio, MIME: reply.MIMEType}, nil
}

// Package llm provides the model backends that generate adventure content:
// text completion, background images and narration speech.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"
	defaultModel    = "claude-sonnet-4-20250514"
	defaultTimeout  = 60 * time.Second
)

// ErrNoAPIKey is returned by constructors given an empty key.
var ErrNoAPIKey = errors.New("api key not set")

// Request is a single text completion request.
type Request struct {
	System      string  // System message, optional
	Prompt      string  // User message
	Temperature float32 // Sampling temperature
	MaxTokens   int
}

// AnthropicClient is an Anthropic Messages API client.
type AnthropicClient struct {
	apiKey     string
	url        string
	httpClient *http.Client
	model      string
}

// Option configures a backend client.
type Option func(*options)

type options struct {
	baseURL    string
	model      string
	voice      string
	httpClient *http.Client
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithVoice overrides the default narration voice.
func WithVoice(voice string) Option {
	return func(o *options) { o.voice = voice }
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func buildOptions(opts []Option) options {
	o := options{httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// message represents an Anthropic API message.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request represents an Anthropic API request.
type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Temperature float32   `json:"temperature,omitempty"`
	Messages    []message `json:"messages"`
}

// response represents an Anthropic API response.
type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(apiKey string, opts ...Option) (*AnthropicClient, error) {
	// Trim any whitespace/newlines that might have snuck in
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrNoAPIKey)
	}

	o := buildOptions(opts)
	c := &AnthropicClient{
		apiKey:     apiKey,
		url:        anthropicAPIURL,
		httpClient: o.httpClient,
		model:      defaultModel,
	}
	if o.baseURL != "" {
		c.url = o.baseURL
	}
	if o.model != "" {
		c.model = o.model
	}
	return c, nil
}

// Complete sends one prompt and returns the trimmed text of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, r Request) (string, error) {
	maxTokens := r.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	req := request{
		Model:       c.model,
		MaxTokens:   maxTokens,
		System:      r.System,
		Temperature: r.Temperature,
		Messages: []message{
			{Role: "user", Content: r.Prompt},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", apiResp.Error.Message)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from API")
	}

	return text, nil
}

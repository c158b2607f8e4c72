package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	elevenLabsAPIURL  = "https://api.elevenlabs.io/v1/text-to-speech"
	elevenLabsVoice   = "N2lVS1w4EtoT3dr4eOWO"
	elevenLabsModel   = "eleven_monolingual_v1"
	maxErrorBodyBytes = 512
)

// ElevenLabsClient synthesizes narration with the ElevenLabs TTS API.
type ElevenLabsClient struct {
	apiKey     string
	url        string
	voice      string
	model      string
	httpClient *http.Client
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// NewElevenLabsClient creates a new ElevenLabs client.
func NewElevenLabsClient(apiKey string, opts ...Option) (*ElevenLabsClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("elevenlabs: %w", ErrNoAPIKey)
	}

	o := buildOptions(opts)
	c := &ElevenLabsClient{
		apiKey:     apiKey,
		url:        elevenLabsAPIURL,
		voice:      elevenLabsVoice,
		model:      elevenLabsModel,
		httpClient: o.httpClient,
	}
	if o.baseURL != "" {
		c.url = strings.TrimRight(o.baseURL, "/")
	}
	if o.voice != "" {
		c.voice = o.voice
	}
	if o.model != "" {
		c.model = o.model
	}
	return c, nil
}

// Synthesize converts text to MP3 speech.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: c.model,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.8,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.url, c.voice)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}
	return audio, nil
}

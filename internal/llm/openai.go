package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/f3rmion/mindvault/internal/vault"
)

const (
	defaultOpenAIModel = openai.GPT4oMini
	defaultImageModel  = openai.CreateImageModelDallE3
	defaultVoice       = openai.VoiceOnyx
)

// OpenAIClient generates text, images and speech through the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	voice  string
}

// NewOpenAIClient creates a client for the OpenAI API, or any API that is
// compatible with it when WithBaseURL is given.
func NewOpenAIClient(apiKey string, opts ...Option) (*OpenAIClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrNoAPIKey)
	}

	o := buildOptions(opts)
	config := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		config.BaseURL = o.baseURL
	}
	config.HTTPClient = o.httpClient

	c := &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  defaultOpenAIModel,
		voice:  string(defaultVoice),
	}
	if o.model != "" {
		c.model = o.model
	}
	if o.voice != "" {
		c.voice = o.voice
	}
	return c, nil
}

// Complete sends one chat completion and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, r Request) (string, error) {
	var messages []openai.ChatCompletionMessage
	if r.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: r.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: r.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage renders a 1024x1024 image for the prompt. The image is
// requested inline so it can be drawn without a second download.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (vault.ImageAsset, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          defaultImageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return vault.ImageAsset{}, fmt.Errorf("create image: %w", err)
	}
	if len(resp.Data) == 0 {
		return vault.ImageAsset{}, fmt.Errorf("no image in response")
	}

	item := resp.Data[0]
	asset := vault.ImageAsset{URL: item.URL, MIME: "image/png"}
	if item.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return vault.ImageAsset{}, fmt.Errorf("decoding image: %w", err)
		}
		asset.Data = data
	}
	if asset.Empty() {
		return vault.ImageAsset{}, fmt.Errorf("no image in response")
	}
	return asset, nil
}

// Synthesize converts text to MP3 speech.
func (c *OpenAIClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(c.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading speech: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty speech response")
	}
	return audio, nil
}

package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientsRequireKey(t *testing.T) {
	_, err := NewAnthropicClient("  \n")
	assert.ErrorIs(t, err, ErrNoAPIKey)
	_, err = NewOpenAIClient("")
	assert.ErrorIs(t, err, ErrNoAPIKey)
	_, err = NewElevenLabsClient("")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestAnthropicComplete(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"  Riddle: What has keys?\n"}]}`)
	}))
	defer srv.Close()

	c, err := NewAnthropicClient("key\n", WithBaseURL(srv.URL), WithModel("test-model"))
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), Request{
		System:      "sys",
		Prompt:      "make a riddle",
		Temperature: 0.8,
		MaxTokens:   250,
	})
	require.NoError(t, err)

	assert.Equal(t, "Riddle: What has keys?", text)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, "sys", got.System)
	assert.Equal(t, 250, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "make a riddle", got.Messages[0].Content)
}

func TestAnthropicAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer srv.Close()

	c, err := NewAnthropicClient("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slow down")
}

func TestAnthropicEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content":[]}`)
	}))
	defer srv.Close()

	c, err := NewAnthropicClient("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Request{Prompt: "x"})
	assert.Error(t, err)
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		msgs := body["messages"].([]any)
		assert.Len(t, msgs, 2)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"Main_Story: dark\n"}}]}`)
	}))
	defer srv.Close()

	c, err := NewOpenAIClient("key", WithBaseURL(srv.URL+"/v1"))
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), Request{System: "sys", Prompt: "story"})
	require.NoError(t, err)
	assert.Equal(t, "Main_Story: dark", text)
}

func TestOpenAIGenerateImageDecodesInlineData(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data":    []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
		})
	}))
	defer srv.Close()

	c, err := NewOpenAIClient("key", WithBaseURL(srv.URL+"/v1"))
	require.NoError(t, err)

	asset, err := c.GenerateImage(context.Background(), "a haunted hall")
	require.NoError(t, err)
	assert.Equal(t, png, asset.Data)
	assert.Equal(t, "image/png", asset.MIME)
}

func TestOpenAISynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3mp3"))
	}))
	defer srv.Close()

	c, err := NewOpenAIClient("key", WithBaseURL(srv.URL+"/v1"), WithVoice("alloy"))
	require.NoError(t, err)

	audio, err := c.Synthesize(context.Background(), "Welcome to the vault")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3mp3"), audio)
}

func TestElevenLabsSynthesize(t *testing.T) {
	var got ttsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+elevenLabsVoice, r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("xi-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("mp3"))
	}))
	defer srv.Close()

	c, err := NewElevenLabsClient("key", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	audio, err := c.Synthesize(context.Background(), "Time's up")
	require.NoError(t, err)

	assert.Equal(t, []byte("mp3"), audio)
	assert.Equal(t, "Time's up", got.Text)
	assert.Equal(t, elevenLabsModel, got.ModelID)
	assert.InDelta(t, 0.5, got.VoiceSettings.Stability, 1e-9)
	assert.InDelta(t, 0.8, got.VoiceSettings.SimilarityBoost, 1e-9)
}

func TestElevenLabsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewElevenLabsClient("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Synthesize(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "quota exceeded")
}

package content

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mindvault/internal/llm"
	"github.com/f3rmion/mindvault/internal/prompt"
	"github.com/f3rmion/mindvault/internal/vault"
)

type mockText struct{ mock.Mock }

func (m *mockText) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockImage struct{ mock.Mock }

func (m *mockImage) GenerateImage(ctx context.Context, p string) (vault.ImageAsset, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(vault.ImageAsset), args.Error(1)
}

type mockSpeech struct{ mock.Mock }

func (m *mockSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestStudioNarrativeUsesStoryPrompt(t *testing.T) {
	text := new(mockText)
	text.On("Complete", mock.Anything, mock.MatchedBy(func(r llm.Request) bool {
		return r.System == prompt.StorySystem &&
			r.MaxTokens == storyMaxTokens &&
			assert.ObjectsAreEqual(float32(storyTemperature), r.Temperature)
	})).Return("Main_Story: dark", nil)

	s := NewStudio(text, nil, nil)
	got, err := s.GenerateNarrative(context.Background(), vault.ThemeMysteryMansion, 4)

	require.NoError(t, err)
	assert.Equal(t, "Main_Story: dark", got)
	text.AssertExpectations(t)
}

func TestStudioRiddlePassesPrior(t *testing.T) {
	text := new(mockText)
	text.On("Complete", mock.Anything, mock.MatchedBy(func(r llm.Request) bool {
		return r.System == prompt.RiddleSystem
	})).Return("Riddle: x", nil).Run(func(args mock.Arguments) {
		r := args.Get(1).(llm.Request)
		assert.Contains(t, r.Prompt, "Riddle 1: What has keys?")
		assert.Contains(t, r.Prompt, "The Library")
	})

	s := NewStudio(text, nil, nil)
	_, err := s.GenerateRiddle(context.Background(), vault.ThemeMysteryMansion, "The Library", []string{"What has keys?"})

	require.NoError(t, err)
	text.AssertExpectations(t)
}

func TestStudioWrapsBackendErrors(t *testing.T) {
	backendErr := errors.New("503 overloaded")

	text := new(mockText)
	text.On("Complete", mock.Anything, mock.Anything).Return("", backendErr)
	image := new(mockImage)
	image.On("GenerateImage", mock.Anything, mock.Anything).Return(vault.ImageAsset{}, backendErr)
	speech := new(mockSpeech)
	speech.On("Synthesize", mock.Anything, mock.Anything).Return(nil, backendErr)

	s := NewStudio(text, image, speech)
	ctx := context.Background()

	_, err := s.GenerateNarrative(ctx, vault.ThemeAncientRuins, 4)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, backendErr)

	_, err = s.GenerateRiddle(ctx, vault.ThemeAncientRuins, "Altar", nil)
	assert.ErrorIs(t, err, ErrGeneration)

	_, err = s.GenerateImage(ctx, vault.ThemeAncientRuins)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, backendErr)

	_, err = s.SynthesizeSpeech(ctx, "hello")
	assert.ErrorIs(t, err, ErrSpeech)
	assert.ErrorIs(t, err, backendErr)
}

func TestStudioMissingBackends(t *testing.T) {
	s := NewStudio(nil, nil, nil)
	ctx := context.Background()

	_, err := s.GenerateNarrative(ctx, vault.ThemeSpaceOdyssey, 4)
	assert.ErrorIs(t, err, ErrGeneration)
	_, err = s.GenerateImage(ctx, vault.ThemeSpaceOdyssey)
	assert.ErrorIs(t, err, ErrGeneration)
	_, err = s.SynthesizeSpeech(ctx, "hi")
	assert.ErrorIs(t, err, ErrSpeech)
}

func TestStudioCountsRequests(t *testing.T) {
	speech := new(mockSpeech)
	speech.On("Synthesize", mock.Anything, "ok").Return([]byte("mp3"), nil)
	speech.On("Synthesize", mock.Anything, "bad").Return(nil, errors.New("boom"))

	okBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(kindSpeech, "success"))
	errBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(kindSpeech, "error"))

	s := NewStudio(nil, nil, speech)
	_, _ = s.SynthesizeSpeech(context.Background(), "ok")
	_, _ = s.SynthesizeSpeech(context.Background(), "bad")

	assert.InDelta(t, okBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues(kindSpeech, "success")), 1e-9)
	assert.InDelta(t, errBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues(kindSpeech, "error")), 1e-9)
}

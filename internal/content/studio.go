package content

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/f3rmion/mindvault/internal/llm"
	"github.com/f3rmion/mindvault/internal/prompt"
	"github.com/f3rmion/mindvault/internal/vault"
)

// Sampling parameters per request kind.
const (
	storyTemperature  = 0.7
	storyMaxTokens    = 500
	riddleTemperature = 0.8
	riddleMaxTokens   = 250
)

// Studio implements Client on top of model backends. Any backend may be nil,
// in which case requests of that kind fail with the matching sentinel error.
type Studio struct {
	text    TextModel
	image   ImageModel
	speech  SpeechModel
	prompts *prompt.Generator
	logger  *zap.Logger
}

// StudioOption configures a Studio.
type StudioOption func(*Studio)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) StudioOption {
	return func(s *Studio) { s.logger = logger }
}

// WithPrompts replaces the prompt generator.
func WithPrompts(g *prompt.Generator) StudioOption {
	return func(s *Studio) { s.prompts = g }
}

// NewStudio creates a Studio from the given backends.
func NewStudio(text TextModel, image ImageModel, speech SpeechModel, opts ...StudioOption) *Studio {
	s := &Studio{
		text:    text,
		image:   image,
		speech:  speech,
		prompts: prompt.NewGenerator(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Client = (*Studio)(nil)

// GenerateNarrative implements Client.
func (s *Studio) GenerateNarrative(ctx context.Context, theme vault.Theme, n int) (text string, err error) {
	defer s.track(kindNarrative, time.Now(), &err)

	if s.text == nil {
		return "", fmt.Errorf("%w: no text model configured", ErrGeneration)
	}
	p, err := s.prompts.Story(theme, n)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	text, err = s.text.Complete(ctx, llm.Request{
		System:      prompt.StorySystem,
		Prompt:      p,
		Temperature: storyTemperature,
		MaxTokens:   storyMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: narrative: %w", ErrGeneration, err)
	}
	return text, nil
}

// GenerateRiddle implements Client.
func (s *Studio) GenerateRiddle(ctx context.Context, theme vault.Theme, location string, prior []string) (text string, err error) {
	defer s.track(kindRiddle, time.Now(), &err)

	if s.text == nil {
		return "", fmt.Errorf("%w: no text model configured", ErrGeneration)
	}
	p, err := s.prompts.Riddle(theme, location, prior)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	text, err = s.text.Complete(ctx, llm.Request{
		System:      prompt.RiddleSystem,
		Prompt:      p,
		Temperature: riddleTemperature,
		MaxTokens:   riddleMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: riddle: %w", ErrGeneration, err)
	}
	return text, nil
}

// GenerateImage implements Client.
func (s *Studio) GenerateImage(ctx context.Context, theme vault.Theme) (asset vault.ImageAsset, err error) {
	defer s.track(kindImage, time.Now(), &err)

	if s.image == nil {
		return vault.ImageAsset{}, fmt.Errorf("%w: no image model configured", ErrGeneration)
	}
	p, err := s.prompts.Image(theme)
	if err != nil {
		return vault.ImageAsset{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	asset, err = s.image.GenerateImage(ctx, p)
	if err != nil {
		return vault.ImageAsset{}, fmt.Errorf("%w: image: %w", ErrGeneration, err)
	}
	return asset, nil
}

// SynthesizeSpeech implements Client.
func (s *Studio) SynthesizeSpeech(ctx context.Context, text string) (audio []byte, err error) {
	defer s.track(kindSpeech, time.Now(), &err)

	if s.speech == nil {
		return nil, fmt.Errorf("%w: no speech model configured", ErrSpeech)
	}
	audio, err = s.speech.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSpeech, err)
	}
	return audio, nil
}

func (s *Studio) track(kind string, start time.Time, err *error) {
	observe(kind, start, *err)
	if *err != nil {
		s.logger.Warn("generation request failed",
			zap.String("kind", kind),
			zap.Duration("duration", time.Since(start)),
			zap.Error(*err))
		return
	}
	s.logger.Debug("generation request",
		zap.String("kind", kind),
		zap.Duration("duration", time.Since(start)))
}

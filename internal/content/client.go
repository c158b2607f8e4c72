// Package content produces the generated material of an adventure: the
// storyline, the riddles, the background image and narration speech.
package content

import (
	"context"
	"errors"

	"github.com/f3rmion/mindvault/internal/llm"
	"github.com/f3rmion/mindvault/internal/vault"
)

var (
	// ErrGeneration marks a failed narrative, riddle or image request.
	ErrGeneration = errors.New("content generation failed")
	// ErrSpeech marks a failed speech synthesis request.
	ErrSpeech = errors.New("speech synthesis failed")
)

// Client is the boundary to the generative services.
type Client interface {
	// GenerateNarrative returns storyline text with a main story and
	// n location sections.
	GenerateNarrative(ctx context.Context, theme vault.Theme, n int) (string, error)
	// GenerateRiddle returns riddle text for one location. prior holds the
	// riddles already generated for this adventure.
	GenerateRiddle(ctx context.Context, theme vault.Theme, location string, prior []string) (string, error)
	GenerateImage(ctx context.Context, theme vault.Theme) (vault.ImageAsset, error)
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// TextModel completes text prompts.
type TextModel interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// ImageModel renders images from a prompt.
type ImageModel interface {
	GenerateImage(ctx context.Context, prompt string) (vault.ImageAsset, error)
}

// SpeechModel converts text to audio.
type SpeechModel interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Package audio plans narration cues and caches their synthesized audio for
// the lifetime of one riddle set.
package audio

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/f3rmion/mindvault/internal/vault"
)

// Request asks for a cue to be narrated with the given text.
type Request struct {
	Key  vault.CueKey
	Text string
}

// Synthesizer converts narration text to audio.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// Stats holds statistics about cache performance.
type Stats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	Failures int64   `json:"failures"`
	HitRate  float64 `json:"hit_rate"`
	Entries  int     `json:"entries"`
}

// Planner resolves cue keys to audio, synthesizing each key at most once
// until the cache is cleared. It is safe for concurrent use.
type Planner struct {
	speech Synthesizer
	logger *zap.Logger

	mu         sync.Mutex
	enabled    bool
	entries    map[vault.CueKey][]byte
	generation uint64 // Bumped by Clear so in-flight results are dropped
	stats      Stats
}

// NewPlanner creates an enabled planner.
func NewPlanner(speech Synthesizer, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		speech:  speech,
		logger:  logger,
		enabled: true,
		entries: make(map[vault.CueKey][]byte),
	}
}

// Ensure returns the audio for key, synthesizing text on a cache miss.
// It returns false when narration is disabled or synthesis fails; failures
// are logged, never returned.
func (p *Planner) Ensure(ctx context.Context, key vault.CueKey, text string) ([]byte, bool) {
	p.mu.Lock()
	if !p.enabled {
		p.mu.Unlock()
		return nil, false
	}
	if data, ok := p.entries[key]; ok {
		p.stats.Hits++
		p.updateHitRate()
		p.mu.Unlock()
		return data, true
	}
	p.stats.Misses++
	p.updateHitRate()
	gen := p.generation
	p.mu.Unlock()

	if p.speech == nil || text == "" {
		p.fail(key, nil)
		return nil, false
	}

	data, err := p.speech.SynthesizeSpeech(ctx, text)
	if err != nil || len(data) == 0 {
		p.fail(key, err)
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen == p.generation {
		p.entries[key] = data
		p.stats.Entries = len(p.entries)
	}
	return data, true
}

func (p *Planner) fail(key vault.CueKey, err error) {
	p.mu.Lock()
	p.stats.Failures++
	p.mu.Unlock()

	p.logger.Warn("narration cue unavailable",
		zap.String("cue", string(key)),
		zap.Error(err))
}

// SetEnabled turns narration on or off. Cached audio is kept.
func (p *Planner) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Enabled reports whether narration is on.
func (p *Planner) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Clear drops every cached cue. Syntheses already in flight complete but are
// not stored.
func (p *Planner) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[vault.CueKey][]byte)
	p.generation++
	p.stats.Entries = 0
}

// Stats returns a snapshot of the cache statistics.
func (p *Planner) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// updateHitRate must be called with mu held.
func (p *Planner) updateHitRate() {
	total := p.stats.Hits + p.stats.Misses
	if total > 0 {
		p.stats.HitRate = float64(p.stats.Hits) / float64(total)
	}
}

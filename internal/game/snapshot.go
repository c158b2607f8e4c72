package game

import (
	"time"

	"github.com/f3rmion/mindvault/internal/vault"
)

// RiddleView is the riddle currently being solved.
type RiddleView struct {
	Number   int // 1-based
	Total    int
	Location string
	Text     string
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	SessionID     string
	Phase         vault.Phase
	Theme         vault.Theme
	MainStory     string
	ShowStory     bool // The storyline is shown while on the first riddle
	Riddle        *RiddleView
	HintVisible   bool
	Hint          string
	WrongAttempts int
	Error         string
	Remaining     time.Duration
	Elapsed       time.Duration
	TimeLimit     time.Duration
	Solved        int
	Total         int
	Background    vault.ImageAsset
	AudioEnabled  bool
}

// Progress returns the solved fraction in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Total)
}

// Snapshot returns the current render state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:     s.id,
		Phase:         s.phase,
		Theme:         s.theme,
		WrongAttempts: s.wrongAttempts,
		Error:         s.errMsg,
		Remaining:     s.remaining(),
		Elapsed:       s.elapsed(),
		TimeLimit:     s.timeLimit,
		Solved:        s.index,
		Total:         s.set.Len(),
		Background:    s.background,
		AudioEnabled:  s.audioEnabled,
	}
	if s.set != nil {
		snap.MainStory = s.set.MainStory
		snap.ShowStory = s.index == 0 && s.phase == vault.PhaseInProgress && s.set.MainStory != ""
	}
	if r, ok := s.set.At(s.index); ok {
		snap.Riddle = &RiddleView{
			Number:   s.index + 1,
			Total:    s.set.Len(),
			Location: r.Location,
			Text:     r.Riddle,
		}
		if s.hintVisible {
			snap.HintVisible = true
			snap.Hint = r.Hint
		}
	}
	return snap
}

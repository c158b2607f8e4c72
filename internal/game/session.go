// Package game implements the Mind Vault session state machine.
//
// A Session is driven by named events (SelectTheme, SubmitAnswer, Tick,
// Retry, Reset, ToggleAudio). Events are not safe for concurrent use; the
// caller delivers them one at a time and calls Tick about once per second
// while a game is in progress.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/f3rmion/mindvault/internal/audio"
	"github.com/f3rmion/mindvault/internal/content"
	"github.com/f3rmion/mindvault/internal/parser"
	"github.com/f3rmion/mindvault/internal/vault"
)

// ErrInvalidEvent is returned for an event the current phase does not accept.
// The session is left unchanged.
var ErrInvalidEvent = errors.New("invalid event for current phase")

// PlaceholderStory replaces the storyline when content generation fails.
const PlaceholderStory = "The vault's storyteller has fallen silent. Choose a theme again to summon a new adventure."

// Clock returns the current time.
type Clock func() time.Time

// Session is one player's game.
type Session struct {
	client  content.Client
	planner *audio.Planner
	logger  *zap.Logger
	now     Clock

	timeLimit      time.Duration
	riddleCount    int
	duplicateGuard bool
	audioEnabled   bool

	id            string
	theme         vault.Theme
	phase         vault.Phase
	set           *vault.RiddleSet
	background    vault.ImageAsset
	index         int
	wrongAttempts int
	totalWrong    int
	hintVisible   bool
	startedAt     time.Time
	finishedAt    time.Time
	lastAnswer    string
	errMsg        string

	cues []audio.Request
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.now = c }
}

// WithTimeLimit sets the countdown length.
func WithTimeLimit(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeLimit = d
		}
	}
}

// WithRiddleCount sets how many riddles an adventure has.
func WithRiddleCount(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.riddleCount = n
		}
	}
}

// WithPlanner attaches the narration cache so the session can clear it and
// keep its enabled flag in step with the audio preference.
func WithPlanner(p *audio.Planner) Option {
	return func(s *Session) { s.planner = p }
}

// WithAudio sets the initial audio preference.
func WithAudio(enabled bool) Option {
	return func(s *Session) { s.audioEnabled = enabled }
}

// WithDuplicateGuard controls whether a submission identical to the previous
// rejected one is ignored. It is on by default; input sources that only
// report deliberate submissions may turn it off.
func WithDuplicateGuard(on bool) Option {
	return func(s *Session) { s.duplicateGuard = on }
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates a session waiting for a theme.
func New(client content.Client, opts ...Option) *Session {
	s := &Session{
		client:         client,
		logger:         zap.NewNop(),
		now:            time.Now,
		timeLimit:      vault.DefaultTimeLimit,
		riddleCount:    vault.DefaultRiddleCount,
		duplicateGuard: true,
		audioEnabled:   true,
		phase:          vault.PhaseNoThemeSelected,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.planner != nil {
		s.planner.SetEnabled(s.audioEnabled)
	}
	return s
}

// SelectTheme starts a new adventure. It is accepted when no theme is set,
// when theme differs from the current one, or when the current adventure has
// no riddles. Generation failures do not fail the event: the session enters
// the in-progress phase with placeholder content and an error message.
func (s *Session) SelectTheme(ctx context.Context, theme vault.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidEvent, theme)
	}
	if s.phase != vault.PhaseNoThemeSelected && theme == s.theme && s.set.Len() > 0 {
		return fmt.Errorf("%w: theme %s already selected", ErrInvalidEvent, theme)
	}

	s.id = uuid.NewString()
	s.theme = theme
	s.set = nil
	s.background = vault.ImageAsset{}
	s.index = 0
	s.wrongAttempts = 0
	s.totalWrong = 0
	s.hintVisible = false
	s.lastAnswer = ""
	s.errMsg = ""
	s.finishedAt = time.Time{}
	s.cues = nil
	if s.planner != nil {
		s.planner.Clear()
	}

	log := s.logger.With(zap.String("session", s.id), zap.String("theme", string(theme)))

	set, genErr := content.BuildAdventure(ctx, s.client, theme, s.riddleCount)
	if genErr != nil {
		log.Error("adventure generation failed", zap.Error(genErr))
		set = &vault.RiddleSet{MainStory: PlaceholderStory}
		s.errMsg = fmt.Sprintf("Error generating adventure: %v", genErr)
	}
	s.set = set

	image, imgErr := s.client.GenerateImage(ctx, theme)
	switch {
	case imgErr != nil && genErr == nil:
		log.Warn("background generation failed", zap.Error(imgErr))
		s.errMsg = fmt.Sprintf("Error generating image: %v", imgErr)
	case imgErr != nil:
		log.Warn("background generation failed", zap.Error(imgErr))
	default:
		s.background = image
	}

	// The countdown starts once content is ready
	s.startedAt = s.now()
	s.phase = vault.PhaseInProgress

	if s.set.Len() > 0 {
		s.emit(vault.CueIntro, introText(theme, s.set.MainStory))
		s.emitRiddle()
	}

	log.Info("theme selected", zap.Int("riddles", s.set.Len()))
	return nil
}

// Tick evaluates the countdown. When no time remains the session moves to
// the timed-out phase; this happens once per countdown.
func (s *Session) Tick() error {
	if s.phase != vault.PhaseInProgress {
		return ErrInvalidEvent
	}
	if s.remaining() == 0 {
		s.timeOut()
	}
	return nil
}

// SubmitAnswer checks text against the current riddle. Blank text and a
// repeat of the previous rejected text are ignored. An answer submitted after
// the countdown reached zero is ignored and the timeout applied instead.
func (s *Session) SubmitAnswer(text string) error {
	if s.phase != vault.PhaseInProgress {
		return ErrInvalidEvent
	}
	if s.remaining() == 0 {
		s.timeOut()
		return fmt.Errorf("%w: time is up", ErrInvalidEvent)
	}
	riddle, ok := s.set.At(s.index)
	if !ok {
		return fmt.Errorf("%w: no riddle to answer", ErrInvalidEvent)
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}
	if s.duplicateGuard && text == s.lastAnswer {
		return nil
	}

	if Matches(text, riddle.Answers) {
		s.accept()
		return nil
	}
	s.reject(text)
	return nil
}

// Matches reports whether a submission is accepted by one of answers: the
// normalized submission must equal an answer or appear within it.
func Matches(submitted string, answers []string) bool {
	guess := parser.Normalize(submitted)
	if guess == "" {
		return false
	}
	for _, a := range answers {
		a = parser.Normalize(a)
		if guess == a || strings.Contains(a, guess) {
			return true
		}
	}
	return false
}

func (s *Session) accept() {
	s.index++
	s.wrongAttempts = 0
	s.hintVisible = false
	s.lastAnswer = ""
	s.errMsg = ""

	if s.index >= s.set.Len() {
		s.phase = vault.PhaseCompleted
		s.finishedAt = s.now()
		s.emit(vault.CueVictory, victoryText)
		s.logger.Info("adventure completed",
			zap.String("session", s.id),
			zap.Duration("elapsed", s.elapsed()),
			zap.Int("wrong_attempts", s.totalWrong))
		return
	}

	s.emit(vault.CueCorrect, correctText)
	s.emitRiddle()
	s.logger.Debug("riddle solved", zap.String("session", s.id), zap.Int("index", s.index))
}

func (s *Session) reject(text string) {
	s.wrongAttempts++
	s.totalWrong++
	s.lastAnswer = text
	s.errMsg = WrongAnswerMessage(s.wrongAttempts)

	s.emit(vault.CueWrong(s.wrongAttempts), wrongText(s.wrongAttempts))
	if s.wrongAttempts >= vault.HintThreshold {
		s.hintVisible = true
	}
	if s.wrongAttempts == vault.HintThreshold {
		if r, ok := s.set.At(s.index); ok {
			s.emit(vault.CueHint(s.index+1), r.Hint)
		}
	}
}

// WrongAnswerMessage returns the feedback for the n-th wrong attempt.
func WrongAnswerMessage(n int) string {
	switch {
	case n <= 1:
		return "Incorrect! Try again. (Attempt 1)"
	case n == 2:
		return "Incorrect! Try again. (Attempt 2). One more wrong answer and you'll get a hint!"
	default:
		return fmt.Sprintf("Incorrect! Try again. (Attempt %d). A hint is now shown below.", n)
	}
}

func (s *Session) timeOut() {
	s.phase = vault.PhaseTimedOut
	s.finishedAt = s.now()
	s.emit(vault.CueTimesUp, timesUpText)
	s.logger.Info("adventure timed out",
		zap.String("session", s.id),
		zap.Int("solved", s.index),
		zap.Int("total", s.set.Len()))
}

// Retry restarts the countdown after a timeout, keeping the riddles and the
// current position.
func (s *Session) Retry() error {
	if s.phase != vault.PhaseTimedOut {
		return ErrInvalidEvent
	}
	s.phase = vault.PhaseInProgress
	s.startedAt = s.now()
	s.finishedAt = time.Time{}
	s.wrongAttempts = 0
	s.hintVisible = false
	s.lastAnswer = ""
	s.errMsg = ""
	s.emitRiddle()
	return nil
}

// Reset discards the adventure and returns to theme selection. The audio
// preference and game settings are kept.
func (s *Session) Reset() {
	s.id = ""
	s.theme = ""
	s.phase = vault.PhaseNoThemeSelected
	s.set = nil
	s.background = vault.ImageAsset{}
	s.index = 0
	s.wrongAttempts = 0
	s.totalWrong = 0
	s.hintVisible = false
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
	s.lastAnswer = ""
	s.errMsg = ""
	s.cues = nil
	if s.planner != nil {
		s.planner.Clear()
	}
}

// ToggleAudio flips the audio preference and returns the new value. Pending
// cues are dropped when audio is turned off.
func (s *Session) ToggleAudio() bool {
	s.audioEnabled = !s.audioEnabled
	if !s.audioEnabled {
		s.cues = nil
	}
	if s.planner != nil {
		s.planner.SetEnabled(s.audioEnabled)
	}
	return s.audioEnabled
}

// DrainCues returns the cue requests emitted since the last call.
func (s *Session) DrainCues() []audio.Request {
	cues := s.cues
	s.cues = nil
	return cues
}

// Summary describes a finished run. It is available once the adventure is
// completed or timed out.
func (s *Session) Summary() (vault.RunSummary, bool) {
	var outcome vault.Outcome
	switch s.phase {
	case vault.PhaseCompleted:
		outcome = vault.OutcomeCompleted
	case vault.PhaseTimedOut:
		outcome = vault.OutcomeTimedOut
	default:
		return vault.RunSummary{}, false
	}
	return vault.RunSummary{
		SessionID:     s.id,
		Theme:         s.theme,
		Outcome:       outcome,
		Solved:        s.index,
		Total:         s.set.Len(),
		WrongAttempts: s.totalWrong,
		Elapsed:       s.elapsed(),
		FinishedAt:    s.finishedAt,
	}, true
}

// elapsed is the time since the countdown started, frozen once the
// adventure finished.
func (s *Session) elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.now()
	if !s.finishedAt.IsZero() {
		end = s.finishedAt
	}
	if d := end.Sub(s.startedAt); d > 0 {
		return d
	}
	return 0
}

// remaining is the time limit minus whole elapsed seconds, never negative.
func (s *Session) remaining() time.Duration {
	if s.phase == vault.PhaseNoThemeSelected {
		return s.timeLimit
	}
	left := s.timeLimit - s.elapsed().Truncate(time.Second)
	if left < 0 {
		return 0
	}
	return left
}

func (s *Session) emit(key vault.CueKey, text string) {
	if !s.audioEnabled {
		return
	}
	s.cues = append(s.cues, audio.Request{Key: key, Text: text})
}

func (s *Session) emitRiddle() {
	if r, ok := s.set.At(s.index); ok {
		s.emit(vault.CueRiddle(s.index+1), r.Riddle)
	}
}

// Package vault provides core types for The Mind Vault escape room.
package vault

import (
	"fmt"
	"strings"
	"time"
)

// Game defaults.
const (
	DefaultRiddleCount = 4
	DefaultTimeLimit   = 300 * time.Second
	HintThreshold      = 3 // Wrong attempts before the hint is shown
)

// Theme is the narrative and visual setting of one session.
type Theme string

const (
	ThemeMysteryMansion  Theme = "MysteryMansion"
	ThemeAncientRuins    Theme = "AncientRuins"
	ThemeSpaceOdyssey    Theme = "SpaceOdyssey"
	ThemeEnchantedForest Theme = "EnchantedForest"
)

// Themes returns every selectable theme in menu order.
func Themes() []Theme {
	return []Theme{
		ThemeMysteryMansion,
		ThemeAncientRuins,
		ThemeSpaceOdyssey,
		ThemeEnchantedForest,
	}
}

// Title returns the human readable theme name (e.g., "Space Odyssey").
func (t Theme) Title() string {
	switch t {
	case ThemeMysteryMansion:
		return "Mystery Mansion"
	case ThemeAncientRuins:
		return "Ancient Ruins"
	case ThemeSpaceOdyssey:
		return "Space Odyssey"
	case ThemeEnchantedForest:
		return "Enchanted Forest"
	}
	return string(t)
}

// TimerStyle returns the palette key used to draw the countdown.
func (t Theme) TimerStyle() string {
	switch t {
	case ThemeAncientRuins:
		return "ruins"
	case ThemeSpaceOdyssey:
		return "space"
	case ThemeEnchantedForest:
		return "forest"
	default:
		return "mystery"
	}
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	for _, known := range Themes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTheme resolves an identifier or title ("space odyssey", "SpaceOdyssey",
// "space-odyssey") to a Theme.
func ParseTheme(s string) (Theme, error) {
	key := normalizeThemeKey(s)
	for _, t := range Themes() {
		if key == normalizeThemeKey(string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

func normalizeThemeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Phase is the state of the game session state machine.
type Phase int

const (
	PhaseNoThemeSelected Phase = iota // Waiting for a theme
	PhaseInProgress                   // Riddles are being solved, clock is running
	PhaseTimedOut                     // Clock ran out; retry keeps the riddles
	PhaseCompleted                    // Every riddle solved
)

func (p Phase) String() string {
	switch p {
	case PhaseNoThemeSelected:
		return "no_theme_selected"
	case PhaseInProgress:
		return "in_progress"
	case PhaseTimedOut:
		return "timed_out"
	case PhaseCompleted:
		return "completed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Story section keys.
const (
	SectionMainStory = "MainStory"
)

// LocationKey returns the story section key for the i-th location (1-based).
func LocationKey(i int) string {
	return fmt.Sprintf("Location_%d", i)
}

// StorySections maps a section key (MainStory, Location_i) to its text.
type StorySections map[string]string

// MainStory returns the overall storyline.
func (s StorySections) MainStory() string {
	return s[SectionMainStory]
}

// Location returns the i-th location description and whether it was present.
func (s StorySections) Location(i int) (string, bool) {
	text, ok := s[LocationKey(i)]
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// Riddle fallbacks used when generated text is missing a field.
const (
	FallbackRiddle = "A challenging riddle awaits..."
	FallbackAnswer = "unknown"
	FallbackHint   = "Look carefully at the wording of the riddle."
)

// FallbackLocation returns the location label used when the story has no
// description for the i-th challenge.
func FallbackLocation(i int) string {
	return fmt.Sprintf("Challenge %d", i)
}

// RiddleRecord is one location's riddle with its accepted answers and hint.
type RiddleRecord struct {
	Location string   `json:"location" yaml:"location"`
	Riddle   string   `json:"riddle" yaml:"riddle"`
	Answers  []string `json:"answers" yaml:"answers"` // Trimmed, lowercased, never empty
	Hint     string   `json:"hint" yaml:"hint"`
}

// RiddleSet is the generated content of one session.
type RiddleSet struct {
	MainStory string         `json:"main_story" yaml:"main_story"`
	Riddles   []RiddleRecord `json:"riddles" yaml:"riddles"`
}

// Len returns the number of riddles in the set; a nil set has none.
func (s *RiddleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Riddles)
}

// At returns the riddle at index i (0-based).
func (s *RiddleSet) At(i int) (RiddleRecord, bool) {
	if s == nil || i < 0 || i >= len(s.Riddles) {
		return RiddleRecord{}, false
	}
	return s.Riddles[i], true
}

// ImageAsset references a generated background image.
type ImageAsset struct {
	URL  string // Remote location, if the backend returned one
	Data []byte // Encoded image bytes (PNG/JPEG), if available
	MIME string
}

// Empty reports whether the asset carries neither a URL nor data.
func (a ImageAsset) Empty() bool {
	return a.URL == "" && len(a.Data) == 0
}

// Outcome is how a finished run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeTimedOut  Outcome = "timed_out"
)

// RunSummary describes a finished run for the history log.
type RunSummary struct {
	SessionID     string
	Theme         Theme
	Outcome       Outcome
	Solved        int
	Total         int
	WrongAttempts int // Total over the whole run
	Elapsed       time.Duration
	FinishedAt    time.Time
}

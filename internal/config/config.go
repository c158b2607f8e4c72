// Package config handles loading and saving user settings for Mind Vault.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/mindvault/internal/vault"
)

// File names inside the config directory.
const (
	SettingsFile = "config.yaml"
	HistoryFile  = "history.db"
	LogFile      = "mindvault.log"
)

// Text providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Speech providers.
const (
	SpeechOpenAI     = "openai"
	SpeechElevenLabs = "elevenlabs"
	SpeechNone       = "none"
)

// Settings holds all user configuration.
type Settings struct {
	Provider   string       `yaml:"provider"`   // Text model provider: openai or anthropic
	TextModel  string       `yaml:"text_model"` // Empty means the provider default
	Speech     string       `yaml:"speech"`     // openai, elevenlabs or none
	Voice      string       `yaml:"voice"`      // Empty means the provider default
	TimeLimit  int          `yaml:"time_limit"` // Seconds
	Riddles    int          `yaml:"riddles"`    // Riddles per adventure
	Audio      bool         `yaml:"audio"`      // Narration on at start
	Background bool         `yaml:"background"` // Draw the generated backdrop
	LogLevel   string       `yaml:"log_level"`  // debug, info, warn, error
	Prompt     PromptConfig `yaml:"prompt"`
}

// PromptConfig holds settings for background image prompt generation.
type PromptConfig struct {
	Style  string `yaml:"style"`  // e.g., "immersive", "watercolor"
	Suffix string `yaml:"suffix"` // Added to end of the image prompt
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Provider:   ProviderOpenAI,
		Speech:     SpeechOpenAI,
		TimeLimit:  int(vault.DefaultTimeLimit / time.Second),
		Riddles:    vault.DefaultRiddleCount,
		Audio:      true,
		Background: true,
		LogLevel:   "info",
		Prompt: PromptConfig{
			Style:  "immersive",
			Suffix: "rich details and light colors, suitable as a background for an escape room",
		},
	}
}

// TimeLimitDuration returns the countdown length.
func (s Settings) TimeLimitDuration() time.Duration {
	return time.Duration(s.TimeLimit) * time.Second
}

// Validate checks the settings for values the game cannot run with.
func (s Settings) Validate() error {
	switch s.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q", s.Provider)
	}
	switch s.Speech {
	case SpeechOpenAI, SpeechElevenLabs, SpeechNone:
	default:
		return fmt.Errorf("unknown speech provider %q", s.Speech)
	}
	if s.TimeLimit <= 0 {
		return fmt.Errorf("time limit must be positive, got %d", s.TimeLimit)
	}
	if s.Riddles < 1 || s.Riddles > 10 {
		return fmt.Errorf("riddles must be between 1 and 10, got %d", s.Riddles)
	}
	return nil
}

// Load reads settings from a YAML file. Fields missing from the file keep
// their default values; a missing file yields the defaults.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parsing settings file: %w", err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func Save(path string, settings Settings) error {
	out, err := yaml.Marshal(&settings)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mindvault"), nil
}

// EnsureConfigDir creates dir, or the default directory when dir is empty,
// and returns its path.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = GetConfigDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

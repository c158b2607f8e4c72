package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), SettingsFile))

	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
	assert.Equal(t, 300*time.Second, settings.TimeLimitDuration())
	assert.NoError(t, settings.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	want := Default()
	want.Provider = ProviderAnthropic
	want.Speech = SpeechElevenLabs
	want.Riddles = 5
	want.Audio = false
	want.Prompt.Style = "watercolor"

	require.NoError(t, Save(path, want))
	got, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("riddles: 2\n"), 0644))

	got, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Riddles)
	assert.Equal(t, ProviderOpenAI, got.Provider)
	assert.True(t, got.Audio)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("riddles: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"provider", func(s *Settings) { s.Provider = "llama" }},
		{"speech", func(s *Settings) { s.Speech = "morse" }},
		{"time limit", func(s *Settings) { s.TimeLimit = 0 }},
		{"riddles", func(s *Settings) { s.Riddles = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "mindvault")

	got, err := EnsureConfigDir(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, dir)
}

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mindvault/internal/config"
	"github.com/f3rmion/mindvault/internal/vault"
)

func withConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Reset()
	viper.Set("config_dir", dir)
	t.Cleanup(viper.Reset)
	return dir
}

func TestLoadSettingsDefaults(t *testing.T) {
	withConfigDir(t)

	settings, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), settings)
}

func TestLoadSettingsOverrides(t *testing.T) {
	dir := withConfigDir(t)

	file := config.Default()
	file.Riddles = 6
	file.Provider = config.ProviderAnthropic
	require.NoError(t, config.Save(filepath.Join(dir, config.SettingsFile), file))

	viper.Set("riddles", 3)
	viper.Set("no_audio", true)
	viper.Set("verbose", true)

	settings, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Riddles)
	assert.Equal(t, config.ProviderAnthropic, settings.Provider)
	assert.False(t, settings.Audio)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	withConfigDir(t)
	viper.Set("provider", "carrier-pigeon")

	_, err := loadSettings()
	assert.Error(t, err)
}

func TestNewStudioRequiresTextKey(t *testing.T) {
	withConfigDir(t)

	_, err := newStudio(config.Default(), nil)
	assert.Error(t, err)
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "escaped", outcomeLabel(vault.OutcomeCompleted))
	assert.Equal(t, "time's up", outcomeLabel(vault.OutcomeTimedOut))
}

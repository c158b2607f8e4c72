package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mindvault/internal/vault"
)

func TestStoryPromptListsEveryLocation(t *testing.T) {
	g := NewGenerator()

	got, err := g.Story(vault.ThemeSpaceOdyssey, 3)
	require.NoError(t, err)

	assert.Contains(t, got, "related to the theme: Space Odyssey")
	assert.Contains(t, got, "connect 3 different locations")
	assert.Contains(t, got, "Main_Story:")
	assert.Contains(t, got, "Location_1:")
	assert.Contains(t, got, "Location_3:")
	assert.NotContains(t, got, "Location_4:")
}

func TestRiddlePromptWithoutPrevious(t *testing.T) {
	g := NewGenerator()

	got, err := g.Riddle(vault.ThemeAncientRuins, "The Sunken Altar", nil)
	require.NoError(t, err)

	assert.Contains(t, got, "escape room location: The Sunken Altar")
	assert.Contains(t, got, "The theme is: Ancient Ruins")
	assert.NotContains(t, got, "Previous riddles")
	assert.Contains(t, got, "Riddle:")
	assert.Contains(t, got, "Answer:")
	assert.Contains(t, got, "Hint:")
}

func TestRiddlePromptNumbersPrevious(t *testing.T) {
	g := NewGenerator()

	got, err := g.Riddle(vault.ThemeMysteryMansion, "Attic", []string{"What has keys?", "What has hands?"})
	require.NoError(t, err)

	assert.Contains(t, got, "Previous riddles generated")
	assert.Contains(t, got, "Riddle 1: What has keys?")
	assert.Contains(t, got, "Riddle 2: What has hands?")
}

func TestImagePromptUsesStyle(t *testing.T) {
	g := NewGenerator()
	g.SetStyle(Style{Name: "watercolor", Suffix: "soft edges"})

	got, err := g.Image(vault.ThemeEnchantedForest)
	require.NoError(t, err)

	assert.Contains(t, got, "watercolor Enchanted Forest setting")
	assert.Contains(t, got, "soft edges")
}

func TestToneCoversEveryTheme(t *testing.T) {
	seen := map[string]bool{}
	for _, theme := range vault.Themes() {
		tone := Tone(theme)
		assert.NotEmpty(t, tone)
		seen[tone] = true
	}
	assert.Len(t, seen, len(vault.Themes()))
}

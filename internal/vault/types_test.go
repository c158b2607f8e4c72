package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{"SpaceOdyssey", ThemeSpaceOdyssey},
		{"space odyssey", ThemeSpaceOdyssey},
		{"Ancient Ruins", ThemeAncientRuins},
		{"enchanted-forest", ThemeEnchantedForest},
		{"mystery_mansion", ThemeMysteryMansion},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTheme("Haunted Submarine")
	assert.Error(t, err)
}

func TestThemeTimerStyle(t *testing.T) {
	assert.Equal(t, "mystery", ThemeMysteryMansion.TimerStyle())
	assert.Equal(t, "ruins", ThemeAncientRuins.TimerStyle())
	assert.Equal(t, "space", ThemeSpaceOdyssey.TimerStyle())
	assert.Equal(t, "forest", ThemeEnchantedForest.TimerStyle())
	assert.Equal(t, "mystery", Theme("unknown").TimerStyle())
}

func TestCueWrongIsCapped(t *testing.T) {
	assert.Equal(t, CueKey("wrong_1"), CueWrong(1))
	assert.Equal(t, CueKey("wrong_3"), CueWrong(3))
	assert.Equal(t, CueKey("wrong_3"), CueWrong(7))
	assert.Equal(t, CueKey("wrong_1"), CueWrong(0))
}

func TestCueKeysEnumeratesKeySpace(t *testing.T) {
	keys := CueKeys(4)
	assert.Len(t, keys, 4+2*4+MaxWrongCue)
	assert.Contains(t, keys, CueRiddle(4))
	assert.Contains(t, keys, CueHint(1))
	assert.Contains(t, keys, CueWrong(3))
	assert.NotContains(t, keys, CueRiddle(5))
}

func TestRiddleSetAt(t *testing.T) {
	var empty *RiddleSet
	assert.Equal(t, 0, empty.Len())
	_, ok := empty.At(0)
	assert.False(t, ok)

	set := &RiddleSet{Riddles: []RiddleRecord{{Riddle: "r1"}}}
	r, ok := set.At(0)
	require.True(t, ok)
	assert.Equal(t, "r1", r.Riddle)
	_, ok = set.At(1)
	assert.False(t, ok)
}

package bigchar

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBlockSize(t *testing.T) {
	require.True(t, IsAvailable())

	out := RenderBlock("04:59", 30, 5)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 30, utf8.RuneCountInString(line))
	}
	assert.True(t, strings.ContainsAny(out, "█▀▄"), "expected some ink")
}

func TestRenderBlockEmpty(t *testing.T) {
	assert.Empty(t, RenderBlock("", 10, 2))
	assert.Empty(t, RenderBlock("1", 0, 2))
}

func TestGetCachedIsStable(t *testing.T) {
	first := GetCached("00:00", 20, 3)
	assert.Equal(t, first, GetCached("00:00", 20, 3))
	assert.NotEqual(t, first, GetCached("00:00", 24, 3))
}

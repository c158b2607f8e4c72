package content

import (
	"context"
	"fmt"

	"github.com/f3rmion/mindvault/internal/parser"
	"github.com/f3rmion/mindvault/internal/vault"
)

// BuildAdventure generates a complete riddle set: the storyline first, then
// one riddle per location, each told about the riddles before it. On any
// failure no partial set is returned.
func BuildAdventure(ctx context.Context, client Client, theme vault.Theme, n int) (*vault.RiddleSet, error) {
	raw, err := client.GenerateNarrative(ctx, theme, n)
	if err != nil {
		return nil, fmt.Errorf("generating storyline: %w", err)
	}
	sections := parser.ParseStory(raw, n)

	set := &vault.RiddleSet{
		MainStory: sections.MainStory(),
		Riddles:   make([]vault.RiddleRecord, 0, n),
	}
	prior := make([]string, 0, n)

	for i := 1; i <= n; i++ {
		location, ok := sections.Location(i)
		if !ok {
			location = vault.FallbackLocation(i)
		}

		raw, err := client.GenerateRiddle(ctx, theme, location, prior)
		if err != nil {
			return nil, fmt.Errorf("generating riddle %d: %w", i, err)
		}

		record := parser.ParseRiddle(raw)
		record.Location = location
		set.Riddles = append(set.Riddles, record)
		prior = append(prior, record.Riddle)
	}

	return set, nil
}

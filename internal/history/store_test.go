package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mindvault/internal/vault"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older := vault.RunSummary{
		SessionID:     "a",
		Theme:         vault.ThemeAncientRuins,
		Outcome:       vault.OutcomeTimedOut,
		Solved:        2,
		Total:         4,
		WrongAttempts: 7,
		Elapsed:       300 * time.Second,
		FinishedAt:    base,
	}
	newer := vault.RunSummary{
		SessionID:     "b",
		Theme:         vault.ThemeSpaceOdyssey,
		Outcome:       vault.OutcomeCompleted,
		Solved:        4,
		Total:         4,
		WrongAttempts: 1,
		Elapsed:       142500 * time.Millisecond,
		FinishedAt:    base.Add(time.Hour),
	}
	require.NoError(t, store.Record(ctx, older))
	require.NoError(t, store.Record(ctx, newer))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "b", runs[0].SessionID)
	assert.Equal(t, vault.ThemeSpaceOdyssey, runs[0].Theme)
	assert.Equal(t, vault.OutcomeCompleted, runs[0].Outcome)
	assert.Equal(t, 142500*time.Millisecond, runs[0].Elapsed)
	assert.True(t, newer.FinishedAt.Equal(runs[0].FinishedAt))
	assert.Equal(t, 7, runs[1].WrongAttempts)

	runs, err = store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordSameSessionUpdates(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()
	run := vault.RunSummary{SessionID: "x", Theme: vault.ThemeMysteryMansion, Outcome: vault.OutcomeTimedOut, Total: 4, FinishedAt: time.Now()}

	require.NoError(t, store.Record(ctx, run))
	run.Outcome = vault.OutcomeCompleted
	run.Solved = 4
	require.NoError(t, store.Record(ctx, run))

	runs, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, vault.OutcomeCompleted, runs[0].Outcome)
}

func TestTotals(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	stats, err := store.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	now := time.Now()
	for i, run := range []vault.RunSummary{
		{SessionID: "1", Outcome: vault.OutcomeCompleted, Elapsed: 200 * time.Second},
		{SessionID: "2", Outcome: vault.OutcomeCompleted, Elapsed: 90 * time.Second},
		{SessionID: "3", Outcome: vault.OutcomeTimedOut, Elapsed: 300 * time.Second},
	} {
		run.Theme = vault.ThemeEnchantedForest
		run.FinishedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Record(ctx, run))
	}

	stats, err = store.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Runs)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 90*time.Second, stats.Fastest)
}

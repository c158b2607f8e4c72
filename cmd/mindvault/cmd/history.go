package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mindvault/internal/config"
	"github.com/f3rmion/mindvault/internal/history"
	"github.com/f3rmion/mindvault/internal/vault"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your recent escape attempts",
	Long: `Show recently finished runs, newest first, with totals over all runs.

Examples:
  mindvault history
  mindvault history --limit 25`,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	configDir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	store, err := history.Open(filepath.Join(configDir, config.HistoryFile))
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	runs, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs yet. Run 'mindvault' to play.")
		return nil
	}

	fmt.Printf("%-17s %-17s %-10s %-8s %-6s %s\n", "FINISHED", "THEME", "OUTCOME", "SOLVED", "WRONG", "TIME")
	for _, run := range runs {
		fmt.Printf("%-17s %-17s %-10s %-8s %-6d %s\n",
			run.FinishedAt.Local().Format("2006-01-02 15:04"),
			run.Theme.Title(),
			outcomeLabel(run.Outcome),
			fmt.Sprintf("%d/%d", run.Solved, run.Total),
			run.WrongAttempts,
			run.Elapsed.Truncate(time.Second))
	}

	totals, err := store.Totals(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d runs, %d escaped", totals.Runs, totals.Completed)
	if totals.Fastest > 0 {
		fmt.Printf(", fastest escape %s", totals.Fastest.Truncate(time.Second))
	}
	fmt.Println()

	return nil
}

func outcomeLabel(o vault.Outcome) string {
	switch o {
	case vault.OutcomeCompleted:
		return "escaped"
	case vault.OutcomeTimedOut:
		return "time's up"
	}
	return string(o)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/mindvault/internal/audio"
	"github.com/f3rmion/mindvault/internal/config"
	"github.com/f3rmion/mindvault/internal/game"
	"github.com/f3rmion/mindvault/internal/history"
	"github.com/f3rmion/mindvault/internal/player"
	"github.com/f3rmion/mindvault/internal/tui"
	"github.com/f3rmion/mindvault/internal/vault"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the escape room",
	Long: `Start the escape room game.

Without --theme you choose a theme from the menu. Themes:
  Mystery Mansion, Ancient Ruins, Space Odyssey, Enchanted Forest

Examples:
  mindvault play
  mindvault play --theme "space odyssey"
  mindvault play --time-limit 300 --riddles 3`,
	RunE: runPlay,
}

var playTheme string

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVarP(&playTheme, "theme", "t", "", "start with this theme")
	rootCmd.Flags().StringVarP(&playTheme, "theme", "t", "", "start with this theme")
}

func runPlay(cmd *cobra.Command, args []string) error {
	var theme vault.Theme
	if playTheme != "" {
		t, err := vault.ParseTheme(playTheme)
		if err != nil {
			return err
		}
		theme = t
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer logger.Sync()

	studio, err := newStudio(settings, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveMetrics(ctx, viper.GetString("metrics_addr"), logger)

	store, err := history.Open(filepath.Join(getConfigDir(), config.HistoryFile))
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	planner := audio.NewPlanner(studio, logger.Named("audio"))

	opts := tui.Options{
		Planner:  planner,
		History:  store,
		Logger:   logger.Named("tui"),
		Theme:    theme,
		Backdrop: settings.Background,
	}
	if p := player.New(); p.Available() {
		opts.Player = p
	} else {
		logger.Info("no audio player found, narration is silent")
	}

	session := game.New(studio,
		game.WithTimeLimit(settings.TimeLimitDuration()),
		game.WithRiddleCount(settings.Riddles),
		game.WithPlanner(planner),
		game.WithAudio(settings.Audio),
		game.WithLogger(logger.Named("game")),
	)

	logger.Info("starting game",
		zap.String("provider", settings.Provider),
		zap.String("speech", settings.Speech),
		zap.Int("riddles", settings.Riddles),
		zap.Duration("time_limit", settings.TimeLimitDuration()))

	return tui.Run(ctx, session, opts)
}

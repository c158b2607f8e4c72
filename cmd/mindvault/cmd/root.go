// Package cmd contains all CLI commands for Mind Vault.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/mindvault/internal/config"
	"github.com/f3rmion/mindvault/internal/content"
	"github.com/f3rmion/mindvault/internal/llm"
	"github.com/f3rmion/mindvault/internal/logging"
	"github.com/f3rmion/mindvault/internal/prompt"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mindvault",
	Short: "The Mind Vault - a timed riddle escape room in your terminal",
	Long: `The Mind Vault is a timed escape room game. Pick a theme and a generated
storyline leads you through a series of locations, each locked by a riddle.

  - Solve every riddle before the countdown runs out
  - Three wrong answers reveal a hint
  - Narration reads the story, riddles and hints aloud

Running 'mindvault' without arguments starts the game.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/mindvault)")
	flags.Bool("verbose", false, "verbose output")
	flags.String("provider", "", "text model provider: openai or anthropic")
	flags.Int("time-limit", 0, "countdown length in seconds")
	flags.Int("riddles", 0, "riddles per adventure")
	flags.Bool("no-audio", false, "start with narration off")
	flags.String("metrics-addr", "", "serve generation metrics on this address, e.g. :9090")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("provider", flags.Lookup("provider"))
	viper.BindPFlag("time_limit", flags.Lookup("time-limit"))
	viper.BindPFlag("riddles", flags.Lookup("riddles"))
	viper.BindPFlag("no_audio", flags.Lookup("no-audio"))
	viper.BindPFlag("metrics_addr", flags.Lookup("metrics-addr"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("MINDVAULT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Provider keys use their conventional names
	viper.BindEnv("openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")
	viper.BindEnv("elevenlabs_api_key", "ELEVENLABS_API_KEY")
	viper.BindEnv("openai_base_url", "OPENAI_BASE_URL")
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings reads the settings file and applies flag and environment
// overrides on top of it.
func loadSettings() (config.Settings, error) {
	path := filepath.Join(getConfigDir(), config.SettingsFile)
	settings, err := config.Load(path)
	if err != nil {
		return settings, err
	}

	if viper.IsSet("provider") {
		settings.Provider = viper.GetString("provider")
	}
	if viper.IsSet("time_limit") {
		settings.TimeLimit = viper.GetInt("time_limit")
	}
	if viper.IsSet("riddles") {
		settings.Riddles = viper.GetInt("riddles")
	}
	if viper.GetBool("no_audio") {
		settings.Audio = false
	}
	if viper.GetBool("verbose") {
		settings.LogLevel = "debug"
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// newLogger creates the file logger in the config directory.
func newLogger(settings config.Settings) (*zap.Logger, error) {
	dir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	return logging.New(logging.Config{
		Level: settings.LogLevel,
		Path:  filepath.Join(dir, config.LogFile),
	})
}

// newStudio wires the model backends selected by settings. Image generation
// needs an OpenAI key regardless of the text provider.
func newStudio(settings config.Settings, logger *zap.Logger) (*content.Studio, error) {
	var (
		text   content.TextModel
		image  content.ImageModel
		speech content.SpeechModel
	)

	openaiOpts := []llm.Option{}
	if url := viper.GetString("openai_base_url"); url != "" {
		openaiOpts = append(openaiOpts, llm.WithBaseURL(url))
	}
	if settings.Voice != "" && settings.Speech == config.SpeechOpenAI {
		openaiOpts = append(openaiOpts, llm.WithVoice(settings.Voice))
	}

	var openaiClient *llm.OpenAIClient
	if key := viper.GetString("openai_api_key"); key != "" {
		c, err := llm.NewOpenAIClient(key, openaiOpts...)
		if err != nil {
			return nil, err
		}
		openaiClient = c
		image = c
	}

	switch settings.Provider {
	case config.ProviderAnthropic:
		var opts []llm.Option
		if settings.TextModel != "" {
			opts = append(opts, llm.WithModel(settings.TextModel))
		}
		c, err := llm.NewAnthropicClient(viper.GetString("anthropic_api_key"), opts...)
		if err != nil {
			return nil, fmt.Errorf("set ANTHROPIC_API_KEY or choose another provider: %w", err)
		}
		text = c
	default:
		if openaiClient == nil {
			return nil, fmt.Errorf("set OPENAI_API_KEY or choose another provider: %w", llm.ErrNoAPIKey)
		}
		if settings.TextModel != "" {
			c, err := llm.NewOpenAIClient(viper.GetString("openai_api_key"),
				append(openaiOpts, llm.WithModel(settings.TextModel))...)
			if err != nil {
				return nil, err
			}
			text = c
		} else {
			text = openaiClient
		}
	}

	switch settings.Speech {
	case config.SpeechElevenLabs:
		var opts []llm.Option
		if settings.Voice != "" {
			opts = append(opts, llm.WithVoice(settings.Voice))
		}
		c, err := llm.NewElevenLabsClient(viper.GetString("elevenlabs_api_key"), opts...)
		if err != nil {
			logger.Warn("narration disabled", zap.Error(err))
			break
		}
		speech = c
	case config.SpeechOpenAI:
		if openaiClient != nil {
			speech = openaiClient
		}
	}

	if image == nil {
		logger.Warn("no OpenAI key, background images disabled")
	}

	gen := prompt.NewGenerator()
	gen.SetStyle(prompt.Style{Name: settings.Prompt.Style, Suffix: settings.Prompt.Suffix})

	return content.NewStudio(text, image, speech,
		content.WithLogger(logger),
		content.WithPrompts(gen),
	), nil
}

// serveMetrics exposes the generation metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(content.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics listener started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

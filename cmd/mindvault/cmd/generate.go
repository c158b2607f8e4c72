package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/mindvault/internal/content"
	"github.com/f3rmion/mindvault/internal/vault"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an adventure without playing it",
	Long: `Generate an adventure for a theme and print its storyline and riddles.

Answers are hidden unless --answers is given. With --image the background
image is generated too and written to the given file.

Examples:
  mindvault generate --theme "ancient ruins"
  mindvault generate --theme forest --riddles 2 --answers
  mindvault generate --theme space --image backdrop.png
  mindvault generate --theme mansion --format yaml`,
	RunE: runGenerate,
}

var (
	generateTheme   string
	generateImage   string
	generateAnswers bool
	generateFormat  string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateTheme, "theme", "t", "", "adventure theme (required)")
	generateCmd.Flags().StringVar(&generateImage, "image", "", "also generate the background and write it to this file")
	generateCmd.Flags().BoolVarP(&generateAnswers, "answers", "a", false, "show answers and hints")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "text", "output format: text or yaml")
	generateCmd.MarkFlagRequired("theme")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	theme, err := vault.ParseTheme(generateTheme)
	if err != nil {
		return err
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

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(os.Stderr, "Creating your %s adventure...\n", theme.Title())
	set, err := content.BuildAdventure(ctx, studio, theme, settings.Riddles)
	if err != nil {
		return err
	}

	if generateImage != "" {
		asset, err := studio.GenerateImage(ctx, theme)
		if err != nil {
			return err
		}
		if len(asset.Data) == 0 {
			return fmt.Errorf("image backend returned no data (url: %s)", asset.URL)
		}
		if err := os.WriteFile(generateImage, asset.Data, 0644); err != nil {
			return fmt.Errorf("writing image: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Background written to %s\n", generateImage)
	}

	if !generateAnswers {
		for i := range set.Riddles {
			set.Riddles[i].Answers = nil
			set.Riddles[i].Hint = ""
		}
	}

	switch generateFormat {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(set)
	case "text", "":
		printAdventure(theme, set)
		return nil
	default:
		return fmt.Errorf("unknown format %q", generateFormat)
	}
}

func printAdventure(theme vault.Theme, set *vault.RiddleSet) {
	fmt.Printf("%s\n%s\n\n", theme.Title(), strings.Repeat("=", len(theme.Title())))
	fmt.Println(set.MainStory)

	for i, r := range set.Riddles {
		fmt.Printf("\n%d. %s\n", i+1, r.Location)
		fmt.Printf("   Riddle: %s\n", r.Riddle)
		if len(r.Answers) > 0 {
			fmt.Printf("   Answer: %s\n", strings.Join(r.Answers, ", "))
		}
		if r.Hint != "" {
			fmt.Printf("   Hint:   %s\n", r.Hint)
		}
	}
}

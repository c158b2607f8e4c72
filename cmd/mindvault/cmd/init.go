package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/mindvault/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Mind Vault configuration",
	Long: `Initialize the Mind Vault configuration in your config directory.

This creates config.yaml with the default settings:
  - provider    (openai or anthropic text generation)
  - speech      (openai, elevenlabs or none)
  - time_limit  (countdown in seconds)
  - riddles     (riddles per adventure)

API keys are read from the environment or a .env file:
  OPENAI_API_KEY, ANTHROPIC_API_KEY, ELEVENLABS_API_KEY`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	configDir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, config.SettingsFile)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	fmt.Printf("Initializing Mind Vault configuration in %s\n\n", configDir)

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("  Created %s\n", config.SettingsFile)

	fmt.Println()
	fmt.Println("Configuration initialized!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Put OPENAI_API_KEY (and optionally ANTHROPIC_API_KEY, ELEVENLABS_API_KEY) in your environment or .env")
	fmt.Println("  2. Edit config.yaml to choose providers, the time limit and riddle count")
	fmt.Println("  3. Run 'mindvault' to enter the vault")

	return nil
}

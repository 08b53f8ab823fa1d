package main

import (
	"fmt"

	"svmm/internal/storage/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Print the settings in effect after applying config.yaml, environment variables
and flags. The Nexus Mods API key is masked.

Examples:
  svmm config show`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Long: `Write config.yaml with default settings to the config directory. The game
directory is taken from --game-dir when given. An existing file is left alone.

Examples:
  svmm config init --game-dir "~/.steam/steam/steamapps/common/Stardew Valley"`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if gameDir := settings.GetString("game-dir"); gameDir != "" {
		cfg.GameDir = gameDir
	}
	if cfg.NexusAPIKey != "" {
		cfg.NexusAPIKey = "********"
	}

	out := cmd.OutOrStdout()
	if settings.GetBool("json") {
		return writeJSON(out, map[string]any{"config_dir": dir, "config": cfg})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Fprintf(out, "# %s\n%s", dir, data)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, _, err := loadConfig()
	if err != nil {
		return err
	}
	if config.Exists(dir) {
		return fmt.Errorf("config already exists in %s", dir)
	}

	cfg := config.Default()
	if gameDir := settings.GetString("game-dir"); gameDir != "" {
		cfg.GameDir = gameDir
	}
	if err := cfg.Save(dir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.Path(dir))
	return nil
}

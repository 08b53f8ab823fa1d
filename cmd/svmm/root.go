package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"svmm/internal/core"
	"svmm/internal/logging"
	"svmm/internal/storage/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "0.1.0"

	// Global flags
	configDir  string
	gameDir    string
	verbose    bool
	jsonOutput bool
	noColor    bool

	// settings layers SVMM_* environment variables under the global flags.
	settings = viper.New()

	// flushLog is replaced by initService once a logger exists.
	flushLog = func() {}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "svmm",
	Short: "Stardew Valley mod manager - profiles, dependencies and archives",
	Long: `svmm manages the Mods folder of a Stardew Valley install.

Mods live in named profiles: the live profile occupies the game's Mods folder,
every other profile is stashed under SVMM/profiles. Toggle mods on and off,
switch profiles, install downloaded archives and check for missing dependencies.

Every flag can also be set through an SVMM_* environment variable
(for example SVMM_GAME_DIR). Run 'svmm --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/svmm)")
	rootCmd.PersistentFlags().StringVar(&gameDir, "game-dir", "", "Stardew Valley install directory (default: config or Steam)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output and debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	settings.SetEnvPrefix("SVMM")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	for _, name := range []string{"config", "game-dir", "verbose", "json", "no-color"} {
		_ = settings.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
// When --json is set and an error occurs, prints {"error":"..."} to stdout before exiting.
func Execute() {
	err := rootCmd.Execute()
	flushLog()
	if err != nil {
		if settings.GetBool("json") {
			printError(os.Stdout, err, true)
		} else {
			printError(os.Stderr, err, false)
		}
		os.Exit(1)
	}
}

// printError reports a failed command, as a JSON object when asJSON is set.
func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		if jsonErr := writeJSON(w, map[string]string{"error": err.Error()}); jsonErr == nil {
			return
		}
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// loadConfig reads config.yaml and applies environment overrides on top.
func loadConfig() (string, *config.Config, error) {
	dir := settings.GetString("config")
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return "", nil, err
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return "", nil, err
	}

	if key := settings.GetString("nexus_api_key"); key != "" {
		cfg.NexusAPIKey = key
	}
	if level := settings.GetString("log_level"); level != "" {
		cfg.LogLevel = level
	}
	if settings.GetBool("verbose") {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}
	return dir, cfg, nil
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	dir, cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, cleanup, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	flushLog = cleanup

	return core.NewService(core.ServiceConfig{
		ConfigDir: dir,
		Config:    cfg,
		GameDir:   settings.GetString("game-dir"),
		Logger:    log,
	})
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

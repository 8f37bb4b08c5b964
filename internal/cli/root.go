// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/agendalink/internal/config"
	"github.com/aidanlsb/agendalink/internal/logutil"
	"github.com/aidanlsb/agendalink/internal/ui"
)

// defaultLogLevel keeps info-level I/O traces quiet unless asked for.
const defaultLogLevel = "warn"

var (
	// Global flags
	configPath string
	verbose    bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "agendalink",
	Short: "Turn pasted agenda lines into note links",
	Long: `agendalink turns a block of calendar agenda text into a list of
[[wikilinks]], one per meeting: noise lines (times, locations, URLs,
"All day") are dropped, one-on-ones are normalized, titles are made safe
as filenames, dated, and same-person meetings on the same day are merged.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config subcommands load the file themselves so that a broken
		// config can still be inspected and fixed.
		switch cmd.Name() {
		case "completion", "help", "version", "config":
			return nil
		}
		if p := cmd.Parent(); p != nil && (p.Name() == "completion" || p.Name() == "config") {
			return nil
		}

		if err := config.LoadDotEnv(".env"); err != nil {
			return preRunError(cmd, ErrConfigInvalid, err, "Fix or remove the .env file in the current directory")
		}

		var err error
		cfg, resolvedConfigPath, err = loadConfigWithPath()
		if err != nil {
			return preRunError(cmd, ErrConfigInvalid, err, "Run 'agendalink config show' to inspect the configuration")
		}
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return preRunError(cmd, ErrConfigInvalid, err, "")
		}
		if err := cfg.Validate(); err != nil {
			return preRunError(cmd, ErrConfigInvalid, fmt.Errorf("invalid config %s: %w", resolvedConfigPath, err), "Run 'agendalink config set <key> <value>' to fix it")
		}

		ui.ConfigureTheme(cfg.UI.Accent)

		level := cfg.Logging.Level
		if strings.TrimSpace(level) == "" {
			level = defaultLogLevel
		}
		if verbose {
			level = "debug"
		}
		logger, err = logutil.New(os.Stderr, logutil.Config{Level: level, Format: cfg.Logging.Format})
		if err != nil {
			return preRunError(cmd, ErrConfigInvalid, err, "")
		}
		logger.Debug("config loaded", "path", resolvedConfigPath)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log pipeline decisions to stderr")
}

// getConfig returns the loaded config, or an empty one before loading.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getConfigPath returns the resolved config path.
func getConfigPath() string {
	if resolvedConfigPath == "" {
		return config.ResolveConfigPath(configPath)
	}
	return resolvedConfigPath
}

// getLogger returns the configured logger, or a discarding one.
func getLogger() *slog.Logger {
	if logger == nil {
		return logutil.Discard()
	}
	return logger
}

func loadConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.LoadOptional(resolvedPath)
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

// preRunError reports a setup failure. In JSON mode the envelope is written
// and cobra is told not to print the error again.
func preRunError(cmd *cobra.Command, code string, err error, suggestion string) error {
	if jsonOutput {
		outputErrorFromErr(code, err, suggestion)
		cmd.SilenceErrors = true
	}
	return err
}

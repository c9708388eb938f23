package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steviee/go-byond/internal/cli/bans"
	"github.com/steviee/go-byond/internal/cli/config"
	"github.com/steviee/go-byond/internal/cli/profile"
	"github.com/steviee/go-byond/internal/cli/settings"
	"github.com/steviee/go-byond/internal/cli/timestamp"
	"github.com/steviee/go-byond/internal/state"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-byond",
		Short: "Query BYOND member profiles and CentCom bans",
		Long: `go-byond is a CLI tool for working with BYOND accounts and timestamps.

It provides a simple interface for:
  - Converting between BYOND timestamps, Unix time and ISO 8601
  - Fetching and parsing profiles from the BYOND members directory
  - Checking whether a ckey has a profile
  - Searching the CentCom ban database

Nothing is cached: every command queries the remote service.`,
		Example: `  # Convert a BYOND timestamp
  go-byond time from-byond 7573392000

  # Show a member profile
  go-byond profile show "Some Guy"

  # Print one profile field
  go-byond profile get someguy joined

  # Search CentCom bans
  go-byond bans search someguy --summary`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger based on flags
			initLogger()

			// Initialize config
			if err := initConfig(); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			applyLogLevel()

			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/go-byond/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))
	rootCmd.AddCommand(timestamp.NewCommand())
	rootCmd.AddCommand(profile.NewCommand())
	rootCmd.AddCommand(bans.NewCommand())
	rootCmd.AddCommand(config.NewCommand())

	return rootCmd
}

// initLogger initializes the global logger based on flags
func initLogger() {
	switch {
	case quiet:
		logLevel.Set(slog.LevelError)
	case verbose:
		logLevel.Set(slog.LevelDebug)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	viper.Reset()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := state.GetConfigDir()
		if err != nil {
			return err
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	settings.Configure(viper.GetViper())

	// A missing file is fine: defaults and environment still apply, and
	// config init may be about to create it.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	return nil
}

// applyLogLevel honors logging.level unless --quiet or --verbose is set.
func applyLogLevel() {
	if quiet || verbose {
		return
	}

	level := viper.GetString(settings.KeyLoggingLevel)
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		logger.Warn("ignoring invalid log level", "level", level)
		return
	}
	logLevel.Set(l)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

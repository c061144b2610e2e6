// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, builds the calendar and resolver, and opens storage

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/config"
	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/logging"
	"github.com/harper/daterange/internal/storage"
)

// skipStore marks commands that run without opening storage.
const skipStore = "skip-store"

var (
	configPath string
	tzFlag     string
	hourShift  int
	logLevel   string

	cfg      *config.Config
	store    storage.Store
	resolver *daterange.Resolver
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "daterange",
	Short: "Relative date ranges for humans and AI agents",
	Long: `
██████╗  █████╗ ████████╗███████╗██████╗  █████╗ ███╗   ██╗ ██████╗ ███████╗
██╔══██╗██╔══██╗╚══██╔══╝██╔════╝██╔══██╗██╔══██╗████╗  ██║██╔════╝ ██╔════╝
██║  ██║███████║   ██║   █████╗  ██████╔╝███████║██╔██╗ ██║██║  ███╗█████╗
██║  ██║██╔══██║   ██║   ██╔══╝  ██╔══██╗██╔══██║██║╚██╗██║██║   ██║██╔══╝
██████╔╝██║  ██║   ██║   ███████╗██║  ██║██║  ██║██║ ╚████║╚██████╔╝███████╗
╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚══════╝

Pick, step, and save date ranges like "last month" or "past 30 days".

Ranges stay relative: "last-month" resolves against today every time
you ask, honoring your time zone, week start, and day start hour.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		if cmd.Annotations[skipStore] == "true" {
			return nil
		}

		cal, err := cfg.Calendar(logging.Named("calendar"))
		if err != nil {
			return err
		}
		resolver = daterange.NewResolver(cal, daterange.WithLogger(logging.Named("resolver")))

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command. Storage is closed even when a command
// fails, since cobra skips post-run hooks on error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/daterange/config.json)")
	rootCmd.PersistentFlags().StringVar(&tzFlag, "tz", "", "IANA time zone (overrides config)")
	rootCmd.PersistentFlags().IntVar(&hourShift, "hour-shift", 0, "hour at which a day begins, 0-23 (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("tz") {
		loaded.Timezone = tzFlag
	}
	if flags.Changed("hour-shift") {
		loaded.HourShift = hourShift
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Normalize(); err != nil {
		return err
	}
	cfg = loaded

	logger = logging.New(cfg.LogLevel, os.Stderr)
	logging.Init(logger)
	return nil
}

// resolvedConfigPath is where the active config lives.
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigPath()
}

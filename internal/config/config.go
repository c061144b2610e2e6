// ABOUTME: Configuration management with storage backend selection
// ABOUTME: Handles calendar preferences, the JSON config file, and the storage factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/daterange/internal/storage"
	"github.com/harper/daterange/internal/timeutil"
)

// Config stores daterange configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "yaml".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts daterange.db here. YAML puts presets.yaml and selection.yaml here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/daterange.
	DataDir string `json:"data_dir,omitempty"`

	// Timezone is an IANA zone name. Empty means the system zone.
	Timezone string `json:"timezone,omitempty"`

	// WeekStart is "sunday" or "monday".
	WeekStart string `json:"week_start,omitempty"`

	// HourShift is the hour at which a day begins, 0..23.
	HourShift int `json:"hour_shift,omitempty"`

	// DateFormat is a Go time layout for date labels.
	DateFormat string `json:"date_format,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// Normalize fills empty fields with defaults and validates the rest.
func (c *Config) Normalize() error {
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if c.Backend != BackendSQLite && c.Backend != BackendYAML {
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart == "" {
		c.WeekStart = DefaultWeekStart
	}
	if _, ok := weekdays[c.WeekStart]; !ok {
		return fmt.Errorf("invalid week_start %q: want sunday or monday", c.WeekStart)
	}
	if c.HourShift < 0 || c.HourShift > 23 {
		return fmt.Errorf("invalid hour_shift %d: want 0..23", c.HourShift)
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday,
	"monday": time.Monday,
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// FirstWeekday returns the configured first day of the week.
func (c *Config) FirstWeekday() time.Weekday {
	if wd, ok := weekdays[strings.ToLower(c.WeekStart)]; ok {
		return wd
	}
	return time.Sunday
}

// Calendar builds the calendar context described by the config.
func (c *Config) Calendar(logger *log.Logger) (*timeutil.Calendar, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	opts := []timeutil.Option{timeutil.WithFirstWeekday(c.FirstWeekday())}
	if logger != nil {
		opts = append(opts, timeutil.WithLogger(logger))
	}
	return timeutil.NewCalendar(loc, opts...), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Store implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.NewSQLiteStore(filepath.Join(dataDir, DBFilename))
	case BackendYAML:
		return storage.NewYAMLStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "daterange", "config.json")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields the defaults,
// which are written back so the user has something to edit.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if err := cfg.Normalize(); err != nil {
				return nil, err
			}
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path atomically.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return storage.AtomicWrite(path, append(data, '\n'))
}

// defaultDataDir returns the standard XDG data directory for daterange.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "daterange")
}

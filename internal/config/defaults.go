// ABOUTME: Centralized configuration defaults for daterange
// ABOUTME: Contains backend names, display settings, and storage constants

package config

// Backends
const (
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"
	DBFilename    = "daterange.db"
)

// Calendar settings
const (
	DefaultWeekStart = "sunday"
	DefaultHourShift = 0
)

// Display settings
const (
	DefaultDateFormat = "Jan 2, 2006"
	DefaultLogLevel   = "warn"
	DisplayIDLength   = 8
	SeparatorWidth    = 60
	DateTimeFormat    = "Mon, 02 Jan 2006 15:04:05 MST"
)

// Storage settings
const (
	DefaultDirPerms = 0755
)

// Export settings
const (
	ICSProductID = "-//harper//daterange//EN"
)

package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// LogFilePermissions is the permission for session log files (rw-r--r--)
	LogFilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Admission control defaults
const (
	// DefaultMaxLoadPercent is the load percentage above which execution is paused
	DefaultMaxLoadPercent = 82.0
	// DefaultLoadPollInterval is how often the load is re-sampled while waiting
	DefaultLoadPollInterval = 5 * time.Second
	// DefaultLoadMaxWait bounds the total time spent waiting for load to drop
	DefaultLoadMaxWait = 5 * time.Minute
)

// Session log limits
const (
	// MaxOutputLength is the longest output text written to a session log
	MaxOutputLength = 10000
	// TruncationSuffix marks output that exceeded MaxOutputLength
	TruncationSuffix = "... (truncated)"
	// NoOutputPlaceholder is written when a command produced no output
	NoOutputPlaceholder = "(no output)"
)

// Environment variables
const (
	// EnvMaxLoad overrides the load threshold; values outside (0, 100] are ignored
	EnvMaxLoad = "OPENCODE_MAX_LOAD"
	// EnvConfigPath overrides the configuration file location
	EnvConfigPath = "OCGUARD_CONFIG"
)

// Time formats
const (
	// LogTimestampFormat renders session log timestamps (UTC, millisecond precision)
	LogTimestampFormat = "2006-01-02T15:04:05.000Z"
	// TimestampFormat is the standard timestamp format for CLI output
	TimestampFormat = time.RFC3339
)

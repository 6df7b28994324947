package domain

// Config is the root configuration, assembled once at startup from the config
// file, environment overrides and defaults, then passed in explicitly wherever
// it is needed.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	History             HistorySettings   `yaml:"history"`
	Throttle            ThrottleSettings  `yaml:"throttle"`
	Blocklist           BlocklistSettings `yaml:"blocklist"`
	Index               IndexSettings     `yaml:"index"`
}

// HistorySettings controls where per-session logs are written.
type HistorySettings struct {
	// Root is the directory holding session logs. Defaults to ~/.tmp/history.
	Root string `yaml:"root"`
}

// ThrottleSettings tunes load-based admission control.
type ThrottleSettings struct {
	// MaxLoadPercent is the admission threshold in (0, 100].
	MaxLoadPercent float64 `yaml:"max_load_percent"`
	// PollIntervalSeconds is the delay between load re-samples while waiting.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	// MaxWaitSeconds bounds the total wait before admitting regardless of load.
	MaxWaitSeconds int `yaml:"max_wait_seconds"`
}

// BlocklistSettings locates the block rules file.
type BlocklistSettings struct {
	// RulesFile is the YAML rules path. Defaults to ~/.ocguard/blocklist.yaml.
	RulesFile string `yaml:"rules_file"`
	// Watch enables hot reloading of the rules file.
	Watch bool `yaml:"watch"`
}

// IndexSettings controls the searchable command index.
type IndexSettings struct {
	// Disabled turns the index off; the zero value keeps it on.
	Disabled bool `yaml:"disabled"`
	// Path is the SQLite database path. Defaults to ~/.ocguard/index.db.
	Path string `yaml:"path"`
}

package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/pkg/filesystem"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// FileLoader loads YAML configuration from ~/.ocguard/config.yaml (overridable
// via OCGUARD_CONFIG). Environment overrides are applied last, so
// OPENCODE_MAX_LOAD always wins over the file.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return applyEnvOverrides(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	cfg = applyEnvOverrides(hydrateDefaults(cfg))
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration with environment overrides
// applied. Used when the config file cannot be loaded at all.
func Defaults() domain.Config {
	return applyEnvOverrides(defaultConfig())
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv(domain.EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".ocguard", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	home := filesystem.UserHomeDir()
	return domain.Config{
		ConfigFormatVersion: "1",
		History: domain.HistorySettings{
			Root: filepath.Join(home, ".tmp", "history"),
		},
		Throttle: domain.ThrottleSettings{
			MaxLoadPercent:      domain.DefaultMaxLoadPercent,
			PollIntervalSeconds: int(domain.DefaultLoadPollInterval.Seconds()),
			MaxWaitSeconds:      int(domain.DefaultLoadMaxWait.Seconds()),
		},
		Blocklist: domain.BlocklistSettings{
			RulesFile: filepath.Join(home, ".ocguard", "blocklist.yaml"),
		},
		Index: domain.IndexSettings{
			Path: filepath.Join(home, ".ocguard", "index.db"),
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	defaults := defaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = defaults.ConfigFormatVersion
	}
	if cfg.History.Root == "" {
		cfg.History.Root = defaults.History.Root
	}
	if cfg.Throttle.MaxLoadPercent == 0 {
		cfg.Throttle.MaxLoadPercent = defaults.Throttle.MaxLoadPercent
	}
	if cfg.Throttle.PollIntervalSeconds == 0 {
		cfg.Throttle.PollIntervalSeconds = defaults.Throttle.PollIntervalSeconds
	}
	if cfg.Throttle.MaxWaitSeconds == 0 {
		cfg.Throttle.MaxWaitSeconds = defaults.Throttle.MaxWaitSeconds
	}
	if cfg.Blocklist.RulesFile == "" {
		cfg.Blocklist.RulesFile = defaults.Blocklist.RulesFile
	}
	if cfg.Index.Path == "" {
		cfg.Index.Path = defaults.Index.Path
	}
	return cfg
}

// applyEnvOverrides folds environment settings into the configuration.
// Malformed or out-of-range values are silently ignored.
func applyEnvOverrides(cfg domain.Config) domain.Config {
	if raw := os.Getenv(domain.EnvMaxLoad); raw != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v > 0 && v <= 100 {
			cfg.Throttle.MaxLoadPercent = v
		}
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

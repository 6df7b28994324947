package blocklist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/opencode-tools/ocguard/assets"
	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/pkg/filesystem"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// Service implements the BlocklistService port with substring rules.
type Service struct {
	path  string
	mu    sync.RWMutex
	rules []domain.BlockRule
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		Blocked []domain.BlockRule `yaml:"blocked"`
	} `yaml:"rules"`
}

// NewService loads block rules from disk (or embedded defaults when the file
// is missing or empty).
func NewService(path string) (*Service, error) {
	path = expandPath(path)
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}
	return &Service{path: path, rules: rules}, nil
}

// Match implements ports.BlocklistService. The first rule whose pattern the
// command contains wins.
func (s *Service) Match(command string) (domain.BlockRule, bool) {
	if command == "" {
		return domain.BlockRule{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rule := range s.rules {
		if rule.Pattern != "" && strings.Contains(command, rule.Pattern) {
			return rule, true
		}
	}
	return domain.BlockRule{}, false
}

// Rules returns a copy of the active rule set.
func (s *Service) Rules() []domain.BlockRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BlockRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Reload re-reads the rules file. On failure the previous rules stay active.
func (s *Service) Reload() error {
	rules, err := loadRules(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rules = rules
	s.mu.Unlock()
	return nil
}

// Path returns the backing rules file path.
func (s *Service) Path() string {
	return s.path
}

func loadRules(path string) ([]domain.BlockRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to embedded defaults
		return defaultRules()
	}
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	if len(rules.Rules.Blocked) == 0 {
		return defaultRules()
	}
	return rules.Rules.Blocked, nil
}

func defaultRules() ([]domain.BlockRule, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(assets.DefaultBlocklistYAML, &rules); err != nil {
		return nil, err
	}
	if len(rules.Rules.Blocked) == 0 {
		return nil, errors.New("embedded blocklist defaults are empty")
	}
	return rules.Rules.Blocked, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(filesystem.UserHomeDir(), ".ocguard", "blocklist.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Join(filesystem.UserHomeDir(), path)
}

var _ ports.BlocklistService = (*Service)(nil)

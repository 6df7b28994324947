package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Blocklist      ports.BlocklistService
	Index          ports.CommandIndex
	Sampler        ports.LoadSampler
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))

	if s.Blocklist != nil {
		checks = append(checks, ok("Blocklist", fmt.Sprintf("%d rules active", len(s.Blocklist.Rules()))))
	} else {
		checks = append(checks, warn("Blocklist", "not initialized"))
	}

	checks = append(checks, historyDirCheck(cfg.History.Root))
	checks = append(checks, loadCheck(s.Sampler, cfg.Throttle.MaxLoadPercent))
	checks = append(checks, envOverrideCheck())

	if s.Index != nil {
		if _, err := s.Index.Records(1, ""); err != nil {
			checks = append(checks, warn("Command index", err.Error()))
		} else {
			checks = append(checks, ok("Command index", s.Index.Path()))
		}
	} else {
		checks = append(checks, warn("Command index", "disabled"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func historyDirCheck(root string) domain.HealthCheck {
	if err := os.MkdirAll(root, domain.DirectoryPermissions); err != nil {
		return fail("History directory", err.Error())
	}
	probe := filepath.Join(root, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), domain.LogFilePermissions); err != nil {
		return fail("History directory", fmt.Sprintf("not writable: %v", err))
	}
	_ = os.Remove(probe)
	return ok("History directory", root)
}

func loadCheck(sampler ports.LoadSampler, threshold float64) domain.HealthCheck {
	if sampler == nil {
		return warn("Load sampler", "not initialized")
	}
	sample := sampler.Sample()
	if !sample.Known {
		return warn("Load sampler", "unavailable on this platform; gate degrades to pass-through")
	}
	return ok("Load sampler", fmt.Sprintf("load %.1f%% (threshold %.0f%%)", sample.Percent, threshold))
}

func envOverrideCheck() domain.HealthCheck {
	raw := os.Getenv(domain.EnvMaxLoad)
	if raw == "" {
		return ok(domain.EnvMaxLoad, "not set, default threshold applies")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 || v > 100 {
		return warn(domain.EnvMaxLoad, fmt.Sprintf("invalid value %q ignored", raw))
	}
	return ok(domain.EnvMaxLoad, fmt.Sprintf("threshold override %.0f%%", v))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}

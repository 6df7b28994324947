// Package intercept orchestrates the two hook phases around a shell command:
// gate before execution, record output after.
package intercept

import (
	"context"
	"errors"

	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// Service holds the gate and recorder dependencies. Throttle settings are
// injected at construction; there is no hidden global state.
type Service struct {
	Blocklist ports.BlocklistService
	Logs      ports.SessionLogStore
	Index     ports.CommandIndex // optional
	Sampler   ports.LoadSampler
	Clock     ports.Clock
	Logger    ports.Logger
	Throttle  domain.ThrottleSettings
}

// Admit decides whether a command may run, waits out high system load, and
// records the command in the session log.
//
// A *domain.BlockedCommandError is the only deliberate rejection. Any other
// returned error is an infrastructure failure the hook boundary is expected
// to drop; Admit itself never aborts the command for those.
func (s *Service) Admit(ctx context.Context, call domain.ToolCall) error {
	if s.Blocklist == nil || s.Logs == nil || s.Sampler == nil || s.Clock == nil || s.Logger == nil {
		return errors.New("intercept.Service dependencies not satisfied")
	}

	if rule, blocked := s.Blocklist.Match(call.Command); blocked {
		return &domain.BlockedCommandError{Pattern: rule.Pattern, Message: rule.Message}
	}

	if err := s.waitForCapacity(ctx); err != nil {
		return err
	}

	if call.Command == "" || call.SessionID == "" {
		return nil
	}

	now := s.Clock.Now()
	err := s.Logs.AppendCommand(call.SessionID, call.WorkingDir, call.Command, now)
	if s.Index != nil {
		indexErr := s.Index.Save(domain.CommandRecord{
			Timestamp:  now,
			SessionID:  call.SessionID,
			WorkingDir: call.WorkingDir,
			Command:    call.Command,
		})
		if err == nil {
			err = indexErr
		}
	}
	return err
}

// Record appends the captured output of a finished bash invocation to the
// session log. Non-bash tool kinds and calls without a session id are
// ignored.
func (s *Service) Record(result domain.ToolResult) error {
	if s.Logs == nil {
		return errors.New("intercept.Service dependencies not satisfied")
	}
	if result.Call.Kind != domain.ToolKindBash {
		return nil
	}
	if result.Call.SessionID == "" {
		return nil
	}
	return s.Logs.AppendOutput(result.Call.SessionID, result.Output)
}

// waitForCapacity polls the load sampler until load drops to the threshold or
// the wait ceiling elapses, whichever comes first. Unknown load admits
// immediately; after the ceiling the command proceeds regardless of load.
func (s *Service) waitForCapacity(ctx context.Context) error {
	threshold := s.Throttle.MaxLoadPercent
	if threshold <= 0 {
		threshold = domain.DefaultMaxLoadPercent
	}

	sample := s.Sampler.Sample()
	if !sample.Known || sample.Percent <= threshold {
		return nil
	}

	deadline := s.Clock.Now().Add(s.Throttle.MaxWait())
	interval := s.Throttle.PollInterval()
	for {
		s.Logger.Debug("system load above threshold, waiting", map[string]interface{}{
			"load":      sample.Percent,
			"threshold": threshold,
		})
		remaining := deadline.Sub(s.Clock.Now())
		if remaining <= 0 {
			return nil
		}
		wait := interval
		if wait > remaining {
			wait = remaining
		}
		if err := s.Clock.Sleep(ctx, wait); err != nil {
			return err
		}
		sample = s.Sampler.Sample()
		if !sample.Known || sample.Percent <= threshold {
			return nil
		}
	}
}

package hook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opencode-tools/ocguard/internal/application/intercept"
	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/infrastructure/blocklist"
	"github.com/opencode-tools/ocguard/internal/infrastructure/history"
	"github.com/opencode-tools/ocguard/internal/pkg/clock"
	"github.com/opencode-tools/ocguard/internal/pkg/logger"
)

type unknownSampler struct{}

func (unknownSampler) Sample() domain.LoadSample { return domain.LoadSample{} }

func newTestInterceptor(t *testing.T, logs *history.SessionLogStore) *Interceptor {
	t.Helper()
	rules, err := blocklist.NewService(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("blocklist.NewService error: %v", err)
	}
	service := &intercept.Service{
		Blocklist: rules,
		Logs:      logs,
		Sampler:   unknownSampler{},
		Clock:     clock.New(),
		Logger:    logger.Nop{},
		Throttle: domain.ThrottleSettings{
			MaxLoadPercent:      domain.DefaultMaxLoadPercent,
			PollIntervalSeconds: 5,
			MaxWaitSeconds:      300,
		},
	}
	return NewInterceptor(service, logger.Nop{})
}

func TestBlockedCommandSurfacesAndSkipsLog(t *testing.T) {
	logs := history.NewSessionLogStore(t.TempDir())
	interceptor := newTestInterceptor(t, logs)

	err := interceptor.OnBeforeExecute(context.Background(), domain.ToolCall{
		Kind:      domain.ToolKindBash,
		Command:   "go test ./...",
		SessionID: "abc123",
	})
	var blocked *domain.BlockedCommandError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected BlockedCommandError, got %v", err)
	}
	if _, statErr := os.Stat(logs.Path("abc123")); !os.IsNotExist(statErr) {
		t.Fatalf("log file must not be created for a blocked command")
	}
}

func TestBeforeAndAfterWriteOrderedEntries(t *testing.T) {
	logs := history.NewSessionLogStore(t.TempDir())
	interceptor := newTestInterceptor(t, logs)
	ctx := context.Background()

	call := domain.ToolCall{
		Kind:       domain.ToolKindBash,
		Command:    "npm run build",
		WorkingDir: "/repo",
		SessionID:  "s1",
	}
	if err := interceptor.OnBeforeExecute(ctx, call); err != nil {
		t.Fatalf("OnBeforeExecute error: %v", err)
	}
	interceptor.OnAfterExecute(ctx, domain.ToolResult{Call: call, Output: "done"})

	data, err := logs.Read("s1")
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	commandAt := strings.Index(text, "$ npm run build")
	outputAt := strings.Index(text, "done")
	if commandAt < 0 || outputAt < 0 || commandAt > outputAt {
		t.Fatalf("expected command entry before output entry, got %q", text)
	}
}

func TestNonBashToolKindPassesThrough(t *testing.T) {
	logs := history.NewSessionLogStore(t.TempDir())
	interceptor := newTestInterceptor(t, logs)
	ctx := context.Background()

	call := domain.ToolCall{Kind: "read", Command: "go test ./...", SessionID: "s1"}
	if err := interceptor.OnBeforeExecute(ctx, call); err != nil {
		t.Fatalf("non-bash tools must pass through, got %v", err)
	}
	interceptor.OnAfterExecute(ctx, domain.ToolResult{Call: call, Output: "text"})

	if ids, _ := logs.Sessions(); len(ids) != 0 {
		t.Fatalf("non-bash tools must not be logged, got %v", ids)
	}
}

type failingLogStore struct{}

func (failingLogStore) AppendCommand(string, string, string, time.Time) error {
	return errors.New("append failed")
}
func (failingLogStore) AppendOutput(string, string) error { return errors.New("append failed") }
func (failingLogStore) Path(string) string                { return "" }
func (failingLogStore) Sessions() ([]string, error)       { return nil, nil }
func (failingLogStore) Read(string) ([]byte, error)       { return nil, nil }

func TestInfrastructureFailuresNeverSurface(t *testing.T) {
	rules, err := blocklist.NewService(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("blocklist.NewService error: %v", err)
	}
	service := &intercept.Service{
		Blocklist: rules,
		Logs:      failingLogStore{},
		Sampler:   unknownSampler{},
		Clock:     clock.New(),
		Logger:    logger.Nop{},
		Throttle:  domain.ThrottleSettings{MaxLoadPercent: 82},
	}
	interceptor := NewInterceptor(service, logger.Nop{})
	ctx := context.Background()

	call := domain.ToolCall{Kind: domain.ToolKindBash, Command: "ls", SessionID: "s1"}
	if err := interceptor.OnBeforeExecute(ctx, call); err != nil {
		t.Fatalf("store failure leaked through the hook boundary: %v", err)
	}
	// Must not panic or propagate either.
	interceptor.OnAfterExecute(ctx, domain.ToolResult{Call: call, Output: "x"})
}

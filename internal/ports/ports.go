// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The application depends on these
// abstractions rather than on concrete file stores, databases, or the host
// plugin runtime.
package ports

import (
	"context"
	"time"

	"github.com/opencode-tools/ocguard/internal/domain"
)

// ConfigProvider loads the effective configuration (file, environment
// overrides, defaults). Implementations typically read ~/.ocguard/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// BlocklistService matches commands against the configured block rules.
// Match returns the first rule whose pattern the command contains.
type BlocklistService interface {
	Match(command string) (domain.BlockRule, bool)
	Rules() []domain.BlockRule
	Reload() error
}

// SessionLogStore appends human-readable entries to per-session history logs.
// Appends are atomic per call; the store never truncates or rewrites a log.
type SessionLogStore interface {
	AppendCommand(sessionID, workingDir, command string, at time.Time) error
	AppendOutput(sessionID, output string) error
	Path(sessionID string) string
	Sessions() ([]string, error)
	Read(sessionID string) ([]byte, error)
}

// CommandIndex records admitted commands for cross-session querying.
type CommandIndex interface {
	Save(domain.CommandRecord) error
	Records(limit int, search string) ([]domain.CommandRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// LoadSampler estimates current system load as a percentage of CPU capacity.
// An unknown sample means the facility is unavailable, not that load is zero.
type LoadSampler interface {
	Sample() domain.LoadSample
}

// Clock abstracts wall-clock time and cancellable sleeping so the admission
// wait loop can be tested without real delays.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// ToolInterceptor is the capability the host runtime depends on. The host
// invokes OnBeforeExecute before running a tool and OnAfterExecute once the
// tool has finished; it serializes the two calls around each tool invocation.
//
// OnBeforeExecute may reject the call by returning a
// *domain.BlockedCommandError. Any other failure inside the interceptor must
// not surface. OnAfterExecute never fails.
type ToolInterceptor interface {
	OnBeforeExecute(ctx context.Context, call domain.ToolCall) error
	OnAfterExecute(ctx context.Context, result domain.ToolResult)
}

// Logger provides structured logging abstraction for the application layer.
// Suppressed infrastructure errors are reported here and nowhere else.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// Package hook adapts the intercept service to the host plugin contract.
package hook

import (
	"context"
	"errors"

	"github.com/opencode-tools/ocguard/internal/application/intercept"
	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

// Interceptor implements the ToolInterceptor port the host runtime depends
// on. Each hook method is the single catch-and-drop boundary for
// infrastructure errors: nothing but a blocklist violation may abort the
// host's handling of a command. Error suppression lives here and nowhere
// deeper.
type Interceptor struct {
	service *intercept.Service
	logger  ports.Logger
}

// NewInterceptor builds the host-facing adapter.
func NewInterceptor(service *intercept.Service, logger ports.Logger) *Interceptor {
	return &Interceptor{service: service, logger: logger}
}

// OnBeforeExecute implements ports.ToolInterceptor. It rejects blocklisted
// commands and otherwise always lets the host proceed, even when logging or
// throttling infrastructure failed.
func (i *Interceptor) OnBeforeExecute(ctx context.Context, call domain.ToolCall) error {
	if call.Kind != domain.ToolKindBash {
		return nil
	}
	err := i.service.Admit(ctx, call)
	if err == nil {
		return nil
	}
	var blocked *domain.BlockedCommandError
	if errors.As(err, &blocked) {
		return blocked
	}
	i.logger.Warn("command gate degraded", map[string]interface{}{
		"session": call.SessionID,
		"error":   err.Error(),
	})
	return nil
}

// OnAfterExecute implements ports.ToolInterceptor. Recording failures never
// interrupt the host's reporting of command results.
func (i *Interceptor) OnAfterExecute(ctx context.Context, result domain.ToolResult) {
	if err := i.service.Record(result); err != nil {
		i.logger.Warn("output recording degraded", map[string]interface{}{
			"session": result.Call.SessionID,
			"error":   err.Error(),
		})
	}
}

var _ ports.ToolInterceptor = (*Interceptor)(nil)

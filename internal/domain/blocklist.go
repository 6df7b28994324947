package domain

import "fmt"

// BlockRule forbids commands containing Pattern and tells the user what to do
// instead.
type BlockRule struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// BlockedCommandError is the only error the interceptor surfaces to the host.
// Everything else in the gating and logging paths is suppressed.
type BlockedCommandError struct {
	Pattern string
	Message string
}

func (e *BlockedCommandError) Error() string {
	return fmt.Sprintf("Command not allowed: %q. %s", e.Pattern, e.Message)
}

package domain

// ToolKind identifies which host tool a hook invocation concerns.
type ToolKind string

const (
	// ToolKindBash is the shell execution tool; the only kind the interceptor acts on.
	ToolKindBash ToolKind = "bash"
)

// ToolCall describes one tool invocation as reported by the host runtime.
// Command, WorkingDir and SessionID may each be empty depending on how the
// host assembled the call.
type ToolCall struct {
	Kind       ToolKind
	Command    string
	WorkingDir string
	SessionID  string
}

// ToolResult carries the captured output of a finished tool invocation.
type ToolResult struct {
	Call   ToolCall
	Output string
}

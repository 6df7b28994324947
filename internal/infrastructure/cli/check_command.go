package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/opencode-tools/ocguard/internal/app"
	"github.com/opencode-tools/ocguard/internal/domain"
)

// newCheckCommand creates the 'check' command. It evaluates a command against
// the gate the same way the host hook would, without executing anything.
func newCheckCommand(container *app.Container) *cobra.Command {
	var (
		workdir string
		session string
		record  bool
	)

	cmd := &cobra.Command{
		Use:   "check <command...>",
		Short: "Evaluate a command against the gate without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			if err := reportGateDecision(cmd.OutOrStdout(), container, command); err != nil {
				return err
			}
			if !record {
				return nil
			}
			if session == "" {
				session = uuid.NewString()
			}
			call := domain.ToolCall{
				Kind:       domain.ToolKindBash,
				Command:    command,
				WorkingDir: workdir,
				SessionID:  session,
			}
			if err := container.Intercept.Admit(cmd.Context(), call); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded to session %s.\n", session)
			return nil
		},
	}

	cmd.Flags().StringVar(&workdir, "workdir", "", "Working directory to record with the command")
	cmd.Flags().StringVar(&session, "session", "", "Session id to record under (default: a fresh id)")
	cmd.Flags().BoolVar(&record, "record", false, "Run the full admission path and append to the session log")
	return cmd
}

// reportGateDecision prints the blocklist and load verdict for a command. A
// blocked command is returned as the error so the process exits non-zero with
// the same message the host would surface.
func reportGateDecision(out io.Writer, container *app.Container, command string) error {
	if rule, blocked := container.Blocklist.Match(command); blocked {
		return &domain.BlockedCommandError{Pattern: rule.Pattern, Message: rule.Message}
	}

	sample := container.Sampler.Sample()
	threshold := container.Intercept.Throttle.MaxLoadPercent
	switch {
	case !sample.Known:
		fmt.Fprintln(out, "Allowed. Load unknown; admission would not wait.")
	case sample.Percent > threshold:
		fmt.Fprintf(out, "Allowed. Load %.1f%% exceeds threshold %.0f%%; admission would wait.\n", sample.Percent, threshold)
	default:
		fmt.Fprintf(out, "Allowed. Load %.1f%% (threshold %.0f%%).\n", sample.Percent, threshold)
	}
	return nil
}

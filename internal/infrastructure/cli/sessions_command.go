package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-tools/ocguard/internal/app"
)

// newSessionsCommand creates the 'sessions' command over the per-session logs.
func newSessionsCommand(container *app.Container) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect per-session history logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := container.Logs.Sessions()
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No session logs yet.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a session's history log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := container.Logs.Read(args[0])
			if err != nil {
				return fmt.Errorf("failed to read session %s: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	return sessionsCmd
}

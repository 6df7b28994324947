// Package cli wires the cobra command tree over the application container.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opencode-tools/ocguard/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	if err := container.StartRulesWatcher(ctx); err != nil {
		container.Logger.Warn("rules watcher unavailable", map[string]interface{}{"error": err.Error()})
	}

	root := &cobra.Command{
		Use:   "ocguard",
		Short: "ocguard - command gate and session history for agent shells",
		Long:  "ocguard intercepts shell commands issued by an agent host, blocks disallowed patterns, throttles under load, and keeps per-session history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newSessionsCommand(container))
	root.AddCommand(newRulesCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}

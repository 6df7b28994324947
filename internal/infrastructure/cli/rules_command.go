package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-tools/ocguard/internal/app"
)

// newRulesCommand creates the 'rules' command for the active blocklist.
func newRulesCommand(container *app.Container) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List active blocklist rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, rule := range container.Blocklist.Rules() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", rule.Pattern, rule.Message)
			}
			return nil
		},
	}

	rulesCmd.AddCommand(&cobra.Command{
		Use:   "reload",
		Short: "Reload rules from the rules file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Blocklist.Reload(); err != nil {
				return fmt.Errorf("failed to reload rules: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rules.\n", len(container.Blocklist.Rules()))
			return nil
		},
	})

	return rulesCmd
}

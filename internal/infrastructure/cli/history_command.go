package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opencode-tools/ocguard/internal/app"
	"github.com/opencode-tools/ocguard/internal/domain"
	"github.com/opencode-tools/ocguard/internal/ports"
)

const defaultHistoryLimit = 20

// newHistoryCommand creates the 'history' command over the command index.
func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded commands across sessions",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently recorded commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listIndexedCommands(cmd.OutOrStdout(), container.Index, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search recorded commands for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listIndexedCommands(cmd.OutOrStdout(), container.Index, limit, args[0])
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the command index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Index == nil {
				return fmt.Errorf("command index disabled")
			}
			return container.Index.Clear()
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export the command index to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Index == nil {
				return fmt.Errorf("command index disabled")
			}
			if err := container.Index.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			return nil
		},
	}
}

func listIndexedCommands(out io.Writer, index ports.CommandIndex, limit int, search string) error {
	if index == nil {
		return fmt.Errorf("command index disabled")
	}

	records, err := index.Records(limit, search)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No commands recorded yet.")
		return nil
	}

	for _, rec := range records {
		workdir := rec.WorkingDir
		if workdir == "" {
			workdir = "-"
		}
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			rec.Timestamp.Format(domain.TimestampFormat),
			rec.SessionID,
			workdir,
			rec.Command)
	}

	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/benched/internal/api/request"
	"github.com/mcoot/benched/internal/api/response"
	"github.com/mcoot/benched/internal/services/roster"
)

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running benched server",
		Long: `Commands that act on the roster held by a running "benched serve".

The server keeps the session history in memory, so history and undo are
only available here and in the TUI.`,
	}

	cmd.AddCommand(newRemoteListCmd())
	cmd.AddCommand(newRemoteTeamsCmd())
	cmd.AddCommand(newRemoteHistoryCmd())
	cmd.AddCommand(newRemoteUndoCmd())
	cmd.AddCommand(newRemoteHealthCmd())
	cmd.AddCommand(newEventsCmd())

	return cmd
}

func newRemoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the server's roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap roster.Snapshot
			if err := client.Get(cmd.Context(), "/roster", &snap); err != nil {
				return err
			}
			newOutput(cmd).Print(snap)
			return nil
		},
	}
}

func newRemoteTeamsCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Show the server's teams, optionally reshuffling into a new size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("size") {
				req := request.TeamSizeRequest{TeamSize: size}
				if err := client.Put(cmd.Context(), "/roster/team-size", req, nil); err != nil {
					return err
				}
			}
			var teams TeamsResult
			if err := client.Get(cmd.Context(), "/roster/teams", &teams); err != nil {
				return err
			}
			newOutput(cmd).Print(teams)
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", teamSizePresets[0], "Number of teams (common: "+presetList()+")")

	return cmd
}

func newRemoteHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show this session's changes, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []response.HistoryEntry
			if err := client.Get(cmd.Context(), "/roster/history", &entries); err != nil {
				return err
			}
			newOutput(cmd).Print(entries)
			return nil
		},
	}
}

func newRemoteUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent add, edit or removal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry response.HistoryEntry
			if err := client.Post(cmd.Context(), "/roster/undo", nil, &entry); err != nil {
				return err
			}
			newOutput(cmd).Print(entry)
			return nil
		},
	}
}

func newRemoteHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult
			if err := client.Get(cmd.Context(), "/health", &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

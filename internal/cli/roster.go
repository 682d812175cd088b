package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/benched/internal/factory"
	"github.com/mcoot/benched/internal/logging"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/palette"
)

// teamSizePresets are the team counts offered as shortcuts
var teamSizePresets = []int{2, 3, 4}

// withRoster loads the configured roster, runs fn against it and then waits
// for every change fn made to be written.
func withRoster(cmd *cobra.Command, fn func(app *factory.App, out *Output) error) (err error) {
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	app, err := factory.New(factory.ConfigFrom(settings, logging.New(cfg.Verbose)))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to save roster: %w", closeErr))
		}
	}()

	if err := app.Roster.Load(cmd.Context()); err != nil {
		return err
	}
	return fn(app, newOutput(cmd))
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show active and benched players",
		Long: `Show the roster. Active players are listed in their shuffled order,
benched players alphabetically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				out.Print(app.Roster.Snapshot())
				return nil
			})
		},
	}
}

func newTeamsCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Shuffle the active players into teams",
		Long: `Shuffle the active players and split them into teams. Player i of the
shuffled order joins team (i mod size) + 1.

Common sizes are 2, 3 and 4; any size of at least 1 is accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				if cmd.Flags().Changed("size") {
					if err := app.Roster.SetTeamSize(size); err != nil {
						return err
					}
				}
				snap := app.Roster.Snapshot()
				out.Print(TeamsResult{
					TeamSize:    snap.TeamSize,
					ColumnWidth: snap.ColumnWidth,
					Teams:       snap.Teams,
				})
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", teamSizePresets[0], "Number of teams (common: "+presetList()+")")

	return cmd
}

func newAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>...",
		Short: "Add active players",
		Long: `Add one or more players to the end of the active list. Each player gets
a random dark color unless --color is given.`,
		Example: `  benched add Amy
  benched add Bob Cid --color "#1f3a5f"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if color != "" {
				normalized, err := palette.Normalize(color)
				if err != nil {
					return err
				}
				color = normalized
			}

			return withRoster(cmd, func(app *factory.App, out *Output) error {
				for _, name := range args {
					c := color
					if c == "" {
						c = palette.RandomDark(app.Random)
					}
					p, _, err := app.Roster.AddOrEdit("", name, c)
					if err != nil {
						return fmt.Errorf("cannot add %q: %w", name, err)
					}
					out.Print(p)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", "", "Color such as #1f3a5f or rgb(31, 58, 95)")

	return cmd
}

func newEditCmd() *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit <player>",
		Short: "Rename or recolor a player",
		Long: `Change a player's name or color. The player may be given by id, id prefix
or name.`,
		Example: `  benched edit amy --name Amelia
  benched edit 3f2a --color "#203040"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("color") {
				return errors.New("nothing to change: pass --name or --color")
			}
			if color != "" {
				normalized, err := palette.Normalize(color)
				if err != nil {
					return err
				}
				color = normalized
			}

			return withRoster(cmd, func(app *factory.App, out *Output) error {
				p, err := resolvePlayer(app.Roster.Players(), args[0])
				if err != nil {
					return err
				}
				newName, newColor := p.Name, p.Color
				if cmd.Flags().Changed("name") {
					newName = name
				}
				if color != "" {
					newColor = color
				}
				updated, _, err := app.Roster.AddOrEdit(p.ID, newName, newColor)
				if err != nil {
					return err
				}
				out.Print(updated)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&color, "color", "c", "", "New hex color")

	return cmd
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <player>...",
		Short: "Move players between active and the bench",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				for _, ref := range args {
					p, err := resolvePlayer(app.Roster.Players(), ref)
					if err != nil {
						return err
					}
					if _, err := app.Roster.ToggleActive(p.ID); err != nil {
						return err
					}
					toggled, err := app.Roster.Get(p.ID)
					if err != nil {
						return err
					}
					out.Print(toggled)
				}
				return nil
			})
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <player>",
		Aliases: []string{"rm"},
		Short:   "Remove a player from the roster",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				p, err := resolvePlayer(app.Roster.Players(), args[0])
				if err != nil {
					return err
				}
				if _, err := app.Roster.QuickRemove(p.ID); err != nil {
					return err
				}
				out.PrintMessage("Removed " + p.Name)
				return nil
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <player>",
		Short: "Delete a player by id",
		Long: `Delete exactly one player. Unlike remove, the player must be given by its
full id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				id := model.PlayerID(args[0])
				p, err := app.Roster.Get(id)
				if err != nil {
					return fmt.Errorf("%q: %w", args[0], err)
				}
				if _, err := app.Roster.Delete(id); err != nil {
					return err
				}
				out.PrintMessage("Deleted " + p.Name)
				return nil
			})
		},
	}
}

func newClearBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-bench",
		Short: "Make every player active and shuffle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				if err := app.Roster.BulkActivate(); err != nil {
					return err
				}
				out.Print(app.Roster.Snapshot())
				return nil
			})
		},
	}
}

func newBenchAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench-all",
		Short: "Move every player to the bench",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoster(cmd, func(app *factory.App, out *Output) error {
				if err := app.Roster.BulkDeactivate(); err != nil {
					return err
				}
				out.Print(app.Roster.Snapshot())
				return nil
			})
		},
	}
}

func presetList() string {
	parts := make([]string, len(teamSizePresets))
	for i, n := range teamSizePresets {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

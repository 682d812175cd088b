package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/benched/internal/factory"
	"github.com/mcoot/benched/internal/logging"
	"github.com/mcoot/benched/internal/tui"
)

func newTUICmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Manage the roster interactively",
		Long: `Open a full-screen view of the bench and the current teams.

Logs would corrupt the screen, so they are dropped unless --log-file is set.
Press ? inside the view for key bindings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			settings, err := cfg.Settings()
			if err != nil {
				return err
			}

			logger, closeLog, err := tuiLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			app, err := factory.New(factory.ConfigFrom(settings, logger))
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
			return tui.Run(cmd.Context(), app.Roster, app.Random)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")

	return cmd
}

func tuiLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := logging.LevelFromEnv()
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(f, level), func() { _ = f.Close() }, nil
}

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/benched/internal/api"
	"github.com/mcoot/benched/internal/factory"
	"github.com/mcoot/benched/internal/logging"
)

func newServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roster over HTTP",
		Long: `Serve the roster as a JSON API under /api/v1, with live roster updates
streamed from /api/v1/roster/events. Logs are written to stdout as JSON.

Stop with Ctrl+C; pending roster writes are flushed before exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cfg.Settings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				settings.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				settings.Server.Port = port
			}

			logger := logging.NewJSON(cmd.OutOrStdout(), cfg.Verbose)

			app, err := factory.New(factory.ConfigFrom(settings, logger))
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Roster.Load(ctx); err != nil {
				return err
			}
			app.StartLiveUpdates()

			serverCfg := api.DefaultServerConfig()
			serverCfg.Host = settings.Server.Host
			serverCfg.Port = settings.Server.Port

			return api.Serve(ctx, api.RouterConfig{
				Logger: logger,
				Roster: app.Roster,
				Random: app.Random,
				Hub:    app.Hub,
			}, serverCfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (env: BENCHED_ADDR)")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Listen port")

	return cmd
}

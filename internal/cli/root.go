package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "benched",
		Short: "Manage a roster of players and shuffle them into teams",
		Long: `benched keeps a roster of players, each either active or on the bench,
and shuffles the active players into teams on demand.

The roster lives in players.json by default. Use --storage redis or a
benched.yaml config file to keep it somewhere else. Every change is saved
as it is made.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Config file (default benched.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&cfg.FilePath, "file", cfg.FilePath, "Roster file for file storage (env: BENCHED_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: file, redis, memory (env: BENCHED_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL for remote commands (env: BENCHED_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Local roster commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newTeamsCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newToggleCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newClearBenchCmd())
	rootCmd.AddCommand(newBenchAllCmd())

	// Long-running front ends
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTUICmd())

	// Commands against a running server
	rootCmd.AddCommand(newRemoteCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

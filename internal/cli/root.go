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
		Use:   "gammon",
		Short: "CLI client for the session matchmaking API",
		Long: `gammon is a CLI client for the session matchmaking API.

It creates and joins two-player game sessions by code, and can poll a
session until an opponent arrives. A stable device id is generated on
first run and persisted, so the server sees the same player each time.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadDeviceID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GAMMON_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Name, "name", "n", cfg.Name, "Display name (env: GAMMON_NAME)")
	rootCmd.PersistentFlags().StringVar(&cfg.DeviceID, "device-id", cfg.DeviceID, "Device id override (env: GAMMON_DEVICE_ID)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielrhuynh/cs-446-ece-452/internal/api/request"
	"github.com/danielrhuynh/cs-446-ece-452/internal/api/response"
)

func requireName() error {
	if cfg.Name == "" {
		return errors.New("a display name is required (use --name or GAMMON_NAME)")
	}
	return nil
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new session and print its code",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(); err != nil {
				return err
			}

			body := request.CreateSessionRequest{
				DeviceID:    cfg.DeviceID,
				DisplayName: cfg.Name,
			}

			var session response.Session
			if err := client.Post("/sessions/create", body, &session); err != nil {
				return err
			}

			return printSession(cfg, session)
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join an existing session by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireName(); err != nil {
				return err
			}

			body := request.JoinSessionRequest{
				DeviceID:    cfg.DeviceID,
				DisplayName: cfg.Name,
				SessionID:   args[0],
			}

			var session response.Session
			if err := client.Post("/sessions/join", body, &session); err != nil {
				return err
			}

			return printSession(cfg, session)
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show a session and its players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var session response.SessionWithPlayers
			if err := client.Get("/sessions/"+args[0], &session); err != nil {
				return err
			}

			return printSessionWithPlayers(cfg, session)
		},
	}
}

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <code>",
		Short: "Poll a session until a second player joins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for {
				var session response.SessionWithPlayers
				if err := client.Get("/sessions/"+args[0], &session); err != nil {
					return err
				}

				if session.Player2 != nil {
					return printSessionWithPlayers(cfg, session)
				}

				fmt.Println("waiting for an opponent...")

				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-time.After(interval):
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 3*time.Second, "Polling interval")

	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status struct {
				Status string `json:"status"`
			}
			if err := client.Get("/health", &status); err != nil {
				return err
			}

			fmt.Println(status.Status)
			return nil
		},
	}
}

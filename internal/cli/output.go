package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielrhuynh/cs-446-ece-452/internal/api/response"
	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
)

// printJSON writes a value as indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSession renders a session in the configured output format
func printSession(cfg *Config, s response.Session) error {
	if cfg.Output == "json" {
		return printJSON(s)
	}

	fmt.Printf("Code:    %s\n", model.FormatCode(model.SessionCode(s.ID)))
	fmt.Printf("Status:  %s\n", s.Status)
	fmt.Printf("Created: %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// printSessionWithPlayers renders an expanded session
func printSessionWithPlayers(cfg *Config, s response.SessionWithPlayers) error {
	if cfg.Output == "json" {
		return printJSON(s)
	}

	fmt.Printf("Code:     %s\n", model.FormatCode(model.SessionCode(s.ID)))
	fmt.Printf("Status:   %s\n", s.Status)
	fmt.Printf("Player 1: %s\n", s.Player1.Name)
	if s.Player2 != nil {
		fmt.Printf("Player 2: %s\n", s.Player2.Name)
	} else {
		fmt.Printf("Player 2: (waiting)\n")
	}
	return nil
}

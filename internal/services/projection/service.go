package projection

import (
	"context"
	"fmt"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage"
)

// Service expands session rows into the read model served to polling
// clients. Pure reads, no mutation; safe to call at polling frequency.
type Service struct {
	storage storage.Storage
}

// New creates a new projection service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Expand resolves a session's player references into display info.
// Player 1 always exists; a missing record there is a store integrity
// failure, not a not-found outcome.
func (s *Service) Expand(ctx context.Context, session *model.Session) (*model.SessionWithPlayers, error) {
	player1, err := s.storage.GetPlayer(ctx, session.Player1ID)
	if err != nil {
		return nil, fmt.Errorf("expanding player 1 of session %s: %w", session.Code, err)
	}

	expanded := &model.SessionWithPlayers{
		Session: *session,
		Player1: model.PlayerInfo{ID: player1.ID, Name: player1.DisplayName},
	}

	if session.Player2ID != nil {
		player2, err := s.storage.GetPlayer(ctx, *session.Player2ID)
		if err != nil {
			return nil, fmt.Errorf("expanding player 2 of session %s: %w", session.Code, err)
		}
		expanded.Player2 = &model.PlayerInfo{ID: player2.ID, Name: player2.DisplayName}
	}

	return expanded, nil
}

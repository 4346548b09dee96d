package response

import (
	"time"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
)

// Session is a session in API responses. The public code doubles as the
// session id on the wire.
type Session struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Player1ID string    `json:"player_1_id"`
	Player2ID *string   `json:"player_2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	var player2ID *string
	if s.Player2ID != nil {
		id := string(*s.Player2ID)
		player2ID = &id
	}
	return Session{
		ID:        string(s.Code),
		Status:    string(s.Status),
		Player1ID: string(s.Player1ID),
		Player2ID: player2ID,
		CreatedAt: s.CreatedAt,
	}
}

// PlayerInfo is the nested player object in expanded session responses
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionWithPlayers is the expanded read model served to polling clients
type SessionWithPlayers struct {
	Session
	Player1 PlayerInfo  `json:"player_1"`
	Player2 *PlayerInfo `json:"player_2"`
}

// SessionWithPlayersFromModel converts model.SessionWithPlayers
func SessionWithPlayersFromModel(s *model.SessionWithPlayers) SessionWithPlayers {
	resp := SessionWithPlayers{
		Session: SessionFromModel(&s.Session),
		Player1: PlayerInfo{ID: string(s.Player1.ID), Name: s.Player1.Name},
	}
	if s.Player2 != nil {
		resp.Player2 = &PlayerInfo{ID: string(s.Player2.ID), Name: s.Player2.Name}
	}
	return resp
}

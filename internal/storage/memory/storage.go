package memory

import (
	"context"
	"sync"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// JoinSession's conditions are checked and applied inside a single
// critical section, which gives the same single-winner guarantee the
// Redis backend gets from its transaction.
type Storage struct {
	mu sync.RWMutex

	players     map[model.PlayerID]*model.Player
	deviceIndex map[string]model.PlayerID
	sessions    map[model.SessionCode]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerID]*model.Player),
		deviceIndex: make(map[string]model.PlayerID),
		sessions:    make(map[model.SessionCode]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ResolveDevice(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.deviceIndex[player.DeviceID]; ok {
		if existing, ok := s.players[existingID]; ok {
			copied := *existing
			return &copied, nil
		}
	}

	stored := *player
	s.players[stored.ID] = &stored
	s.deviceIndex[stored.DeviceID] = stored.ID

	copied := stored
	return &copied, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) GetPlayerByDevice(ctx context.Context, deviceID string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.deviceIndex[deviceID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *player
	s.players[stored.ID] = &stored
	s.deviceIndex[stored.DeviceID] = stored.ID
	return nil
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.Code]; ok {
		return model.ErrCodeTaken
	}
	stored := *session
	s.sessions[stored.Code] = &stored
	return nil
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) JoinSession(ctx context.Context, code model.SessionCode, player2ID model.PlayerID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[code]
	if !ok {
		return nil, model.ErrJoinFailed
	}
	if session.Status != model.SessionStatusOpen ||
		session.Player2ID != nil ||
		session.Player1ID == player2ID {
		return nil, model.ErrJoinFailed
	}

	p2 := player2ID
	session.Player2ID = &p2
	session.Status = model.SessionStatusActive

	copied := *session
	return &copied, nil
}

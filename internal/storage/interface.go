package storage

import (
	"context"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
)

// Storage defines the interface for data persistence.
//
// JoinSession is the one operation whose atomicity the whole design
// leans on: implementations must guarantee that under concurrent join
// attempts against the same code exactly one caller succeeds and every
// other caller receives model.ErrJoinFailed. A read-then-write sequence
// is not an acceptable implementation.
type Storage interface {
	// Player operations

	// ResolveDevice claims the player's device id. If the device id is
	// unclaimed, the player is stored and returned. If another player
	// already holds it (including one racing this call), that existing
	// player is returned instead. First writer wins.
	ResolveDevice(ctx context.Context, player *model.Player) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByDevice(ctx context.Context, deviceID string) (*model.Player, error)
	// SavePlayer overwrites an existing player record (rename-in-place).
	SavePlayer(ctx context.Context, player *model.Player) error

	// Session operations

	// CreateSession inserts a new session, failing with model.ErrCodeTaken
	// if the code is already in use.
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error)
	// JoinSession atomically sets player 2 and transitions the session to
	// active, if and only if the session exists, is open, has no second
	// player, and player1 differs from player2ID. Any unmet condition
	// yields model.ErrJoinFailed.
	JoinSession(ctx context.Context, code model.SessionCode, player2ID model.PlayerID) (*model.Session, error)
}

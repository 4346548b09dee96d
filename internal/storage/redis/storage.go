package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// All records are JSON blobs; the device index and session codes are
// claimed with SETNX, and JoinSession runs as a WATCH/MULTI transaction
// so that the conditional update is a single atomic unit.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ResolveDevice(ctx context.Context, player *model.Player) (*model.Player, error) {
	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	// Write the record first, then claim the index. The index claim is
	// the linearization point: losing it means another player holds the
	// device id, so the orphaned record is removed again.
	if err := s.client.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Err(); err != nil {
		return nil, err
	}

	claimed, err := s.client.SetNX(ctx, deviceIndexKey(player.DeviceID), string(player.ID), s.cfg.PlayerTTL).Result()
	if err != nil {
		return nil, err
	}
	if claimed {
		return player, nil
	}

	_ = s.client.Del(ctx, playerKey(player.ID)).Err()
	return s.GetPlayerByDevice(ctx, player.DeviceID)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByDevice(ctx context.Context, deviceID string) (*model.Player, error) {
	playerIDStr, err := s.client.Get(ctx, deviceIndexKey(deviceID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(playerIDStr))
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline the record write and index refresh together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL)
	pipe.Set(ctx, deviceIndexKey(player.DeviceID), string(player.ID), s.cfg.PlayerTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, sessionKey(session.Code), data, s.cfg.SessionTTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrCodeTaken
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) JoinSession(ctx context.Context, code model.SessionCode, player2ID model.PlayerID) (*model.Session, error) {
	key := sessionKey(code)
	var joined *model.Session

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrJoinFailed
			}
			return err
		}

		var session model.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return err
		}

		if session.Status != model.SessionStatusOpen ||
			session.Player2ID != nil ||
			session.Player1ID == player2ID {
			return model.ErrJoinFailed
		}

		p2 := player2ID
		session.Player2ID = &p2
		session.Status = model.SessionStatusActive

		updated, err := json.Marshal(&session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, s.cfg.SessionTTL)
			return nil
		})
		if err != nil {
			return err
		}

		joined = &session
		return nil
	}

	retries := s.cfg.JoinRetries
	if retries < 1 {
		retries = 1
	}

	// The watched key changing under us means another joiner won the
	// race; re-running observes their write and fails the conditions.
	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return joined, nil
	}

	return nil, fmt.Errorf("join transaction for session %s did not settle after %d attempts", code, retries)
}

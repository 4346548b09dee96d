package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielrhuynh/cs-446-ece-452/internal/dependencies/clock"
	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
	"github.com/danielrhuynh/cs-446-ece-452/internal/storage"
)

// Service is the player directory: it maps opaque device identifiers to
// stable player records. Repeated resolutions for the same device always
// yield the same player identity; only the display name may change.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new directory service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Resolve finds or creates the player for a device identifier.
// A known device with a new display name is renamed in place; the
// identity and device id never change. deviceToken is recorded when
// non-empty and otherwise left as stored.
func (s *Service) Resolve(ctx context.Context, deviceID, displayName, deviceToken string) (*model.Player, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, model.ErrInvalidDeviceID
	}
	displayName = model.CleanDisplayName(displayName)
	if displayName == "" {
		return nil, model.ErrInvalidDisplayName
	}

	player, err := s.storage.GetPlayerByDevice(ctx, deviceID)
	if err == nil {
		changed := false
		if player.DisplayName != displayName {
			player.DisplayName = displayName
			changed = true
		}
		if deviceToken != "" && player.DeviceToken != deviceToken {
			player.DeviceToken = deviceToken
			changed = true
		}
		if !changed {
			return player, nil
		}
		if err := s.storage.SavePlayer(ctx, player); err != nil {
			return nil, err
		}
		s.logger.Debug("player renamed",
			slog.String("player_id", string(player.ID)),
		)
		return player, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	candidate := &model.Player{
		ID:          model.PlayerID(uuid.NewString()),
		DisplayName: displayName,
		DeviceID:    deviceID,
		DeviceToken: deviceToken,
		CreatedAt:   s.clock.Now(),
	}

	// ResolveDevice is first-writer-wins: if another request created a
	// player for this device concurrently, the existing record comes back.
	player, err = s.storage.ResolveDevice(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if player.ID == candidate.ID {
		s.logger.Info("player created",
			slog.String("player_id", string(player.ID)),
		)
	}
	return player, nil
}

// Get retrieves a player by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

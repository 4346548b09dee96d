package redis

import (
	"fmt"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
)

// Key prefix for all matchmaking data
const keyPrefix = "gammon"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// deviceIndexKey returns the Redis key for the device_id -> player_id index
func deviceIndexKey(deviceID string) string {
	return fmt.Sprintf("%s:idx:device:%s", keyPrefix, deviceID)
}

// sessionKey returns the Redis key for a Session
func sessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, code)
}

package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// MaxDisplayNameLength bounds stored display names
const MaxDisplayNameLength = 64

// Player represents an anonymous participant, keyed by the opaque
// device identifier generated by its client installation
type Player struct {
	ID          PlayerID
	DisplayName string
	DeviceID    string
	DeviceToken string // optional push notification token
	CreatedAt   time.Time
}

// CleanDisplayName applies the display name policy: trim surrounding
// whitespace and truncate to MaxDisplayNameLength runes. Returns an
// empty string for names that are empty after trimming.
func CleanDisplayName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxDisplayNameLength {
		return name
	}
	return string([]rune(name)[:MaxDisplayNameLength])
}

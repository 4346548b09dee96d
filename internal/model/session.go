package model

import (
	"strings"
	"time"
)

// SessionCode is the short public identifier for a session, exchanged
// between players out of band and typed in to join
type SessionCode string

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"   // waiting for a second player
	SessionStatusActive SessionStatus = "active" // both players present
	SessionStatusClosed SessionStatus = "closed" // no further activity
)

const (
	// CodeLength is the length of generated session codes
	CodeLength = 6
	// CodeAlphabet is the characters used in session codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// codeSeparatorIndex is where FormatCode inserts the display separator
	codeSeparatorIndex = 4
)

// Session pairs up to two players under a shared code.
// Player2ID is nil until a join succeeds; a successful join is the only
// transition out of the open status within this service.
type Session struct {
	Code      SessionCode
	Status    SessionStatus
	Player1ID PlayerID
	Player2ID *PlayerID
	CreatedAt time.Time
}

// PlayerInfo is the display-ready view of one side of a session
type PlayerInfo struct {
	ID   PlayerID
	Name string
}

// SessionWithPlayers is the read model served to polling clients,
// with player references expanded into display info
type SessionWithPlayers struct {
	Session
	Player1 PlayerInfo
	Player2 *PlayerInfo
}

// NormalizeCode canonicalizes user input: uppercase with separators and
// whitespace stripped, so "abc-123" and "ABC123" address the same session
func NormalizeCode(raw string) SessionCode {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToUpper(raw) {
		switch r {
		case '-', ' ', '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return SessionCode(b.String())
}

// ValidCode reports whether a normalized code has the generated shape:
// exactly CodeLength characters drawn from CodeAlphabet
func ValidCode(code SessionCode) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(CodeAlphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

// FormatCode renders a code for display with a separator after the
// fourth character (e.g. "XK49-TZ"). Display only; the separator is not
// part of the stored identity.
func FormatCode(code SessionCode) string {
	if len(code) <= codeSeparatorIndex {
		return string(code)
	}
	return string(code[:codeSeparatorIndex]) + "-" + string(code[codeSeparatorIndex:])
}

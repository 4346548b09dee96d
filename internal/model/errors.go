package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrCodeTaken       = errors.New("session code already in use")

	// ErrJoinFailed is the single outcome for every join rule failure
	// (unknown code, session full, not open, self-join). Deliberately
	// generic so the API never acts as a code-guessing oracle.
	ErrJoinFailed = errors.New("could not join session")

	// Input validation errors
	ErrInvalidDeviceID    = errors.New("device id is required")
	ErrInvalidDisplayName = errors.New("display name is required")
	ErrInvalidCode        = errors.New("invalid session code")
)

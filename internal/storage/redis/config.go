package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Zero means no expiry. These are storage hygiene for
	// abandoned rows, not a session lifecycle mechanism.
	PlayerTTL  time.Duration
	SessionTTL time.Duration

	// JoinRetries bounds the optimistic transaction retries in JoinSession
	JoinRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		PlayerTTL:    0,
		SessionTTL:   7 * 24 * time.Hour,
		JoinRetries:  5,
	}
}

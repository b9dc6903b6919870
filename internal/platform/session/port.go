package session

import (
	"context"
	"time"
)

// Store is the persisted key-value state behind the session shell. A zero
// TTL means the key lives until explicitly deleted (the browser
// localStorage analogue); a positive TTL expires it (sessionStorage).
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes a value with the given TTL (0 = no expiry)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys in one step
	Delete(ctx context.Context, keys ...string) error
}

// AuthGateway exchanges credentials for an upstream bearer token
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
}

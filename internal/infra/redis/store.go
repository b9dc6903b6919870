package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// KeyPrefix namespaces every key the panel persists
const KeyPrefix = "backoffice:"

// Store is the Redis-backed persistence for session and navigation state.
// It implements session.Store: zero-TTL keys live until logout clears them,
// positive-TTL keys expire with the upstream token.
type Store struct {
	client *redis.Client
	logger *logger.Logger
}

// NewStore creates a new state store
func NewStore(client *redis.Client, log *logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log.WithField("component", "state_store"),
	}
}

// Get retrieves a value; a missing key is not an error
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("state store error", "operation", "get", "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to read state key: %w", err)
	}
	return val, true, nil
}

// Set writes a value with the given TTL (0 = no expiry)
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, KeyPrefix+key, value, ttl).Err(); err != nil {
		s.logger.Error("state store error", "operation", "set", "key", key, "error", err)
		return fmt.Errorf("failed to write state key: %w", err)
	}
	return nil
}

// Delete removes the given keys in a single pipelined step, so a logout
// clears its whole key set together.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, key := range keys {
		pipe.Del(ctx, KeyPrefix+key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("state store error", "operation", "delete", "keys", len(keys), "error", err)
		return fmt.Errorf("failed to delete state keys: %w", err)
	}
	return nil
}

// Ping checks connectivity for health reporting
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

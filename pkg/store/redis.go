package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"

	"github.com/bogaguard/bogaguard/pkg/engine"
)

// RedisStore keeps the engine snapshot in a single Redis key as JSON.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, key: key}, nil
}

// Save writes the snapshot, retrying transient failures with exponential
// backoff. The caller's context bounds the whole attempt.
func (s *RedisStore) Save(ctx context.Context, snap engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Load reads the stored snapshot. A missing key is not an error.
func (s *RedisStore) Load(ctx context.Context) (engine.Snapshot, bool, error) {
	var snap engine.Snapshot

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("redis get: %w", err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

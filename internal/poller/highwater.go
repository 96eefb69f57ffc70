package poller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const highWaterKey = "thingspeak:last_entry_id"

// HighWaterStore persists the id of the last processed feed entry so a
// restart neither reprocesses nor silently skips samples.
type HighWaterStore interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, entryID int64) error
}

// RedisHighWaterStore keeps the mark in redis. Progress state is
// ephemeral operational data, so it stays out of the relational store.
type RedisHighWaterStore struct {
	client *redis.Client
}

func NewRedisHighWaterStore(client *redis.Client) *RedisHighWaterStore {
	return &RedisHighWaterStore{client: client}
}

// Get returns 0 when no mark has been written yet.
func (s *RedisHighWaterStore) Get(ctx context.Context) (int64, error) {
	val, err := s.client.Get(ctx, highWaterKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read high-water mark: %w", err)
	}

	entryID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt high-water mark %q: %w", val, err)
	}

	return entryID, nil
}

func (s *RedisHighWaterStore) Set(ctx context.Context, entryID int64) error {
	if err := s.client.Set(ctx, highWaterKey, strconv.FormatInt(entryID, 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to store high-water mark: %w", err)
	}
	return nil
}

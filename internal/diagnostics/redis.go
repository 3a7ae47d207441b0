package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/octofit/dashboard/internal/models"
)

// DefaultRedisKey is the list holding serialized warnings
const DefaultRedisKey = "octofit:diagnostics:warnings"

// RedisStore keeps warnings in a capped Redis list
type RedisStore struct {
	client   *redis.Client
	key      string
	capacity int
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Key      string
	Capacity int
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultRedisKey
	}
	capacity := cfg.Capacity
	if capacity < 1 {
		capacity = 100
	}

	slog.Info("redis diagnostics store connected", "address", cfg.Address, "key", key)

	return &RedisStore{client: client, key: key, capacity: capacity}, nil
}

// Record pushes w to the head of the list and trims the tail
func (s *RedisStore) Record(ctx context.Context, w models.Warning) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal warning: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, int64(s.capacity-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record warning: %w", err)
	}
	return nil
}

// Recent returns up to limit warnings, newest first. limit <= 0 returns all.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]models.Warning, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	items, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read warnings: %w", err)
	}

	out := make([]models.Warning, 0, len(items))
	for _, item := range items {
		var w models.Warning
		if err := json.Unmarshal([]byte(item), &w); err != nil {
			slog.Warn("skipping malformed warning entry", "key", s.key, "error", err)
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// Ping verifies Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

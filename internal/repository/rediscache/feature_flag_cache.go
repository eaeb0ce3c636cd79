// Package rediscache shares the enabled flag keys between instances through Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "habit_tracker"

type FeatureFlagCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewFeatureFlagCache(client *redis.Client, prefix string, ttl time.Duration) *FeatureFlagCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &FeatureFlagCache{
		client: client,
		key:    prefix + ":feature_flags:enabled_keys",
		ttl:    ttl,
	}
}

func (c *FeatureFlagCache) Get(ctx context.Context) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get enabled keys: %w", err)
	}

	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		// A corrupt value is treated as a miss and dropped.
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, nil
	}
	return keys, true, nil
}

func (c *FeatureFlagCache) Set(ctx context.Context, keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	payload, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set enabled keys: %w", err)
	}
	return nil
}

func (c *FeatureFlagCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis invalidate enabled keys: %w", err)
	}
	return nil
}

func (c *FeatureFlagCache) Backend() string {
	return "redis"
}

// Package cache holds the Redis-backed cache of form settings documents.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "form-service:settings:"

// FormCache caches the settings JSON of a form
type FormCache interface {
	Get(ctx context.Context, formID uint) ([]byte, bool)
	Set(ctx context.Context, formID uint, data []byte)
	Invalidate(ctx context.Context, formID uint)
}

type redisFormCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewFormCache returns a Redis cache, or a no-op cache when client is nil.
// Cache failures are logged and treated as misses.
func NewFormCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) FormCache {
	if client == nil {
		return NoopFormCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisFormCache{client: client, ttl: ttl, logger: logger}
}

func settingsKey(formID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, formID)
}

func (c *redisFormCache) Get(ctx context.Context, formID uint) ([]byte, bool) {
	data, err := c.client.Get(ctx, settingsKey(formID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Settings cache read failed", zap.Uint("form_id", formID), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (c *redisFormCache) Set(ctx context.Context, formID uint, data []byte) {
	if err := c.client.Set(ctx, settingsKey(formID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Settings cache write failed", zap.Uint("form_id", formID), zap.Error(err))
	}
}

func (c *redisFormCache) Invalidate(ctx context.Context, formID uint) {
	if err := c.client.Del(ctx, settingsKey(formID)).Err(); err != nil {
		c.logger.Warn("Settings cache invalidation failed", zap.Uint("form_id", formID), zap.Error(err))
	}
}

// NoopFormCache never stores anything
type NoopFormCache struct{}

func (NoopFormCache) Get(context.Context, uint) ([]byte, bool) { return nil, false }
func (NoopFormCache) Set(context.Context, uint, []byte)        {}
func (NoopFormCache) Invalidate(context.Context, uint)         {}

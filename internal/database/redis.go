package database

import (
	"context"
	"time"

	"form-service/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedis connects to Redis using the URL when set, otherwise Addr/Password/DB.
// An empty configuration returns a nil client and no error; the cache then degrades to a no-op.
func NewRedis(cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	case cfg.Addr != "":
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	default:
		log.Info("Redis not configured, settings cache disabled")
		return nil, nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info("Redis connection established", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}

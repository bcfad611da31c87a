package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis opens the redis client used by the rate limiter. A nil client
// is returned when redis is unreachable; callers treat that as "limiter off".
func ConnectRedis(cfg *Config, log *zap.SugaredLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unreachable, rate limiting disabled", "addr", cfg.Redis.Addr, "err", err)
		return nil
	}
	return client
}

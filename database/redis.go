package database

import (
	"context"
	"time"

	"mediaminder/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// OpenRedis connects to REDIS_URL. It returns nil when Redis is not
// configured or does not answer; callers fall back to in-process state.
func OpenRedis(cfg *config.Config, log logrus.FieldLogger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("invalid REDIS_URL, using in-process rate limiter")
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, using in-process rate limiter")
		_ = client.Close()
		return nil
	}

	log.WithField("addr", opts.Addr).Info("Connected to redis")
	return client
}

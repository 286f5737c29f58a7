package database

import (
	"context"
	"fmt"
	"time"

	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedisClient connects to Redis, which backs the login rate-limit
// counters. The connection is verified up front so a bad REDIS_URL fails
// at startup rather than on the first login attempt.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return rdb, nil
}

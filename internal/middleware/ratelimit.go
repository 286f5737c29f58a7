package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LoginLimiter implements a fixed-window per-IP rate limit backed by
// Redis, applied to the login endpoint to slow brute-force attempts.
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    zerolog.Logger
}

// NewLoginLimiter creates a LoginLimiter (e.g. 10 attempts per minute).
func NewLoginLimiter(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, limit: limit, window: window, log: log}
}

// Middleware returns a Gin middleware that rejects clients over the limit
// with 429. A Redis failure lets the request through: the limiter is a
// hardening layer, and the credential check behind it still fails closed.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:login:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			l.log.Error().Err(err).Msg("Rate limiter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			l.rdb.Expire(ctx, key, l.window)
		}

		if count > int64(l.limit) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

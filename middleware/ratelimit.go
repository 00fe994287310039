package middleware

import (
	"context"
	"net/http"
	"time"

	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Fixed-window counter: first INCR in the window sets the expiry, counts
// above the limit are rejected.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a shared fixed-window rate limiter. A nil limiter (no
// redis configured) allows everything.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow reports whether the key may proceed. Redis errors fail open: losing
// the limiter must not take login down with it.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" || limit <= 0 || window <= 0 {
		return true
	}
	opCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(opCtx, l.client, []string{key}, window.Milliseconds(), limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}

// RateLimit limits by client IP under the given key prefix.
func RateLimit(l *RedisLimiter, prefix string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := prefix + ":" + c.RealIP()
			if !l.Allow(c.Request().Context(), key, limit, window) {
				return c.JSON(http.StatusTooManyRequests, &serrors.APIError{
					Code:        serrors.CodeRateLimited,
					Description: "too many requests, try again later",
				})
			}
			return next(c)
		}
	}
}

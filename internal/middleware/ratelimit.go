package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

// ErrNoRateLimitStore is returned when no Redis client is configured.
var ErrNoRateLimitStore = errors.New("rate limit store unavailable")

// RateLimiter enforces fixed-window request limits backed by Redis counters.
type RateLimiter struct {
	rdb *redis.Client
	env string
}

// NewRateLimiter creates a limiter. Limits are not enforced in the "test" and
// "development" environments so local workflows are not throttled.
func NewRateLimiter(rdb *redis.Client, env string) *RateLimiter {
	return &RateLimiter{rdb: rdb, env: env}
}

func (l *RateLimiter) bypassed() bool {
	switch l.env {
	case "", "test", "development":
		return true
	}
	return false
}

// Allow checks if id has exceeded limit requests on resource within window.
// Returns true if allowed, false if limit exceeded.
func (l *RateLimiter) Allow(ctx context.Context, resource, id string, limit int, window time.Duration) (bool, error) {
	if l.bypassed() {
		return true, nil
	}
	if l.rdb == nil {
		return false, ErrNoRateLimitStore
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		l.rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(limit), nil
}

// Limit returns a Fiber middleware enforcing limit requests per window under the given resource name.
// It keys by authenticated userID (if set in c.Locals("userID")) otherwise by remote IP.
func (l *RateLimiter) Limit(resource string, limit int, window time.Duration, policy FailPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		} else {
			id = fmt.Sprintf("ip:%s", c.IP())
		}

		allowed, err := l.Allow(c.UserContext(), resource, id, limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit fail-closed",
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
				return fiber.NewError(fiber.StatusServiceUnavailable, "rate limit unavailable")
			}
			return c.Next()
		}

		if !allowed {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}

// Package limiter throttles admin login attempts per client IP.
//
// The counter lives in redis so the budget holds across process restarts,
// unlike the in-process token buckets used for general rate limiting.
package limiter

import (
	"context"
	"fmt"
	"time"

	"meteory_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLimit is the allowed number of password attempts per window.
	DefaultLimit = 5
	// DefaultWindow is the fixed throttle window.
	DefaultWindow = time.Minute
)

// LoginThrottle is a fixed-window counter keyed by client IP.
type LoginThrottle struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	log    *logger.Logger
}

// New creates a login throttle backed by the given redis client.
func New(rdb *redis.Client, log *logger.Logger) *LoginThrottle {
	return &LoginThrottle{
		rdb:    rdb,
		limit:  DefaultLimit,
		window: DefaultWindow,
		log:    log,
	}
}

// Allow consumes one attempt for the IP and reports whether it is within
// budget. Redis outages fail open: locking admins out because redis is down
// is worse than briefly losing the throttle.
func (t *LoginThrottle) Allow(ctx context.Context, clientIP string) bool {
	key := fmt.Sprintf("auth:throttle:%s", clientIP)

	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		t.log.Error("login throttle unavailable", "error", err)
		return true
	}
	if count == 1 {
		if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
			t.log.Error("setting throttle window failed", "error", err)
		}
	}

	if count > t.limit {
		t.log.RateLimitExceeded(clientIP, "/api/auth")
		return false
	}
	return true
}

// Reset clears the attempt counter for an IP, called after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, clientIP string) {
	key := fmt.Sprintf("auth:throttle:%s", clientIP)
	if err := t.rdb.Del(ctx, key).Err(); err != nil {
		t.log.Error("resetting login throttle failed", "error", err)
	}
}

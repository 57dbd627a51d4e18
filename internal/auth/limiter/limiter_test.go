package limiter

import (
	"context"
	"testing"

	"meteory_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newThrottle(t *testing.T) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, logger.New("test")), mr
}

func TestAllowWithinBudget(t *testing.T) {
	throttle, _ := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < DefaultLimit; i++ {
		if !throttle.Allow(ctx, "203.0.113.5") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if throttle.Allow(ctx, "203.0.113.5") {
		t.Fatal("attempt beyond the budget should be denied")
	}
}

func TestBudgetIsPerIP(t *testing.T) {
	throttle, _ := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < DefaultLimit+1; i++ {
		throttle.Allow(ctx, "203.0.113.5")
	}
	if !throttle.Allow(ctx, "198.51.100.9") {
		t.Fatal("a different IP should have its own budget")
	}
}

func TestWindowExpiryRestoresBudget(t *testing.T) {
	throttle, mr := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < DefaultLimit+1; i++ {
		throttle.Allow(ctx, "203.0.113.5")
	}
	mr.FastForward(DefaultWindow)

	if !throttle.Allow(ctx, "203.0.113.5") {
		t.Fatal("budget should reset after the window expires")
	}
}

func TestResetClearsCounter(t *testing.T) {
	throttle, _ := newThrottle(t)
	ctx := context.Background()

	for i := 0; i < DefaultLimit; i++ {
		throttle.Allow(ctx, "203.0.113.5")
	}
	throttle.Reset(ctx, "203.0.113.5")

	if !throttle.Allow(ctx, "203.0.113.5") {
		t.Fatal("reset should restore the budget")
	}
}

func TestFailsOpenWhenRedisDown(t *testing.T) {
	throttle, mr := newThrottle(t)
	mr.Close()

	if !throttle.Allow(context.Background(), "203.0.113.5") {
		t.Fatal("throttle should fail open when redis is unreachable")
	}
}

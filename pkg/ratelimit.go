package pkg

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Errors
var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// WindowCounter counts hits on a key within a ttl window shared by all replicas.
type WindowCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisCounter is a WindowCounter backed by INCR + EXPIRE.
type RedisCounter struct {
	Client *redis.Client
}

func (r RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := r.Client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// DistributedLimiter combines local rate.Limiter with a shared counter for global enforcement.
type DistributedLimiter struct {
	localLimiter *rate.Limiter
	counter      WindowCounter
	key          string        // e.g: "donation:billing_rate"
	ttl          time.Duration // e.g: 1m for counter-expiry
	limit        int64         // max hits per ttl window across replicas
	logger       *zap.Logger
}

// NewDistributedLimiter creates a limiter; if ratePerSec=0, it's unlimited.
// A nil counter keeps enforcement local.
func NewDistributedLimiter(counter WindowCounter, key string, ratePerSec, burst int, ttl time.Duration, logger *zap.Logger) *DistributedLimiter {
	var local *rate.Limiter
	if ratePerSec > 0 {
		local = rate.NewLimiter(rate.Limit(ratePerSec), burst)
	}
	return &DistributedLimiter{
		localLimiter: local,
		counter:      counter,
		key:          key,
		ttl:          ttl,
		limit:        int64(ratePerSec) * int64(ttl/time.Second),
		logger:       logger,
	}
}

// Allow checks if a token is available locally, then in the shared window.
func (d *DistributedLimiter) Allow(ctx context.Context) bool {
	if d.localLimiter == nil {
		return true // Unlimited
	}

	// Local check first (fast path)
	if !d.localLimiter.Allow() {
		return false
	}
	if d.counter == nil || d.limit <= 0 {
		return true
	}

	count, err := d.counter.Incr(ctx, d.key, d.ttl)
	if err != nil {
		d.logger.Error("shared rate limit error; falling back to local", zap.Error(err))
		return true
	}
	if count > d.limit {
		d.logger.Warn("global rate limit exceeded", zap.Int64("count", count), zap.Int64("limit", d.limit))
		return false
	}
	return true
}

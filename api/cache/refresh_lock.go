package cache

import (
	"context"
	"fmt"
	"time"

	"tourneyhub/pkg/apperrors"

	"github.com/redis/go-redis/v9"
)

const refreshLockKey = "refresh:account:%d"

// LockRedis is the part of the redis client the refresh lock uses.
type LockRedis interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RefreshLock stops concurrent refreshes of the same account.
type RefreshLock interface {
	Acquire(ctx context.Context, accountId uint) error
	Release(ctx context.Context, accountId uint) error
}

type refreshLock struct {
	redis    LockRedis
	duration time.Duration
}

// NewRefreshLock creates a lock held at most for the given duration.
func NewRefreshLock(redis LockRedis, duration time.Duration) RefreshLock {
	return &refreshLock{
		redis:    redis,
		duration: duration,
	}
}

// Acquire takes the lock of a account or fails with apperrors.ErrRefreshInProgress.
func (rl *refreshLock) Acquire(ctx context.Context, accountId uint) error {
	key := fmt.Sprintf(refreshLockKey, accountId)

	lockAcquired, err := rl.redis.SetNX(ctx, key, "processing", rl.duration).Result()
	if err != nil {
		return fmt.Errorf("couldn't check the refresh lock on redis: %w", err)
	}

	if lockAcquired {
		return nil
	}

	ttl, err := rl.redis.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		return apperrors.ErrRefreshInProgress
	}

	return fmt.Errorf("%w, try again in %d seconds", apperrors.ErrRefreshInProgress, int(ttl.Seconds()))
}

// Release frees the lock of a account.
func (rl *refreshLock) Release(ctx context.Context, accountId uint) error {
	return rl.redis.Del(ctx, fmt.Sprintf(refreshLockKey, accountId)).Err()
}

package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker on Redsync's Redlock
// mutexes. Acquired mutexes are remembered per key so Release can
// present the matching token.
type RedisLocker struct {
	rs     *redsync.Redsync
	logger *zap.Logger

	mu   sync.Mutex
	held map[string]*redsync.Mutex
}

// NewRedisLocker creates a DistributedLocker backed by the given
// Redis client.
func NewRedisLocker(client *redis.Client, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		logger: logger,
		held:   make(map[string]*redsync.Mutex),
	}
}

// Acquire claims key for ttl. A single attempt is made; contention is
// reported as false, not as an error.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	mutex := r.rs.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			r.logger.Debug("lock held by another instance", zap.String("key", key))

			return false, nil
		}

		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.mu.Lock()
	r.held[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release drops the claim on key. Keys this instance never acquired
// are ignored, and an expired claim is not an error.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, ok := r.held[key]
	delete(r.held, key)
	r.mu.Unlock()

	if !ok {
		r.logger.Debug("lock not held by this instance", zap.String("key", key))

		return nil
	}

	if _, err := mutex.UnlockContext(ctx); err != nil {
		if errors.Is(err, redsync.ErrLockAlreadyExpired) {
			r.logger.Debug("lock already expired", zap.String("key", key))

			return nil
		}

		return fmt.Errorf("release lock %s: %w", key, err)
	}

	r.logger.Debug("lock released", zap.String("key", key))

	return nil
}

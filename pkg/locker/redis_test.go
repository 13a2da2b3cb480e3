package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testKey = "jobs:orders:lock"

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisLocker_Acquire(t *testing.T) {
	_, client := setupRedis(t)
	l := NewRedisLocker(client, zap.NewNop())

	acquired, err := l.Acquire(context.Background(), testKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_Acquire_Contention(t *testing.T) {
	_, client := setupRedis(t)
	first := NewRedisLocker(client, zap.NewNop())
	second := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	acquired, err := first.Acquire(ctx, testKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = second.Acquire(ctx, testKey, 5*time.Second)
	require.NoError(t, err, "contention is not an error")
	assert.False(t, acquired)
}

func TestRedisLocker_ReleaseThenReacquire(t *testing.T) {
	_, client := setupRedis(t)
	l := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	acquired, err := l.Acquire(ctx, testKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, l.Release(ctx, testKey))

	acquired, err = l.Acquire(ctx, testKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired, "released key should be acquirable again")
}

func TestRedisLocker_Release_NotOwned(t *testing.T) {
	_, client := setupRedis(t)
	owner := NewRedisLocker(client, zap.NewNop())
	other := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	acquired, err := owner.Acquire(ctx, testKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	// A foreign release is a no-op, the owner's claim survives.
	require.NoError(t, other.Release(ctx, testKey))

	acquired, err = other.Acquire(ctx, testKey, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestRedisLocker_CooldownExpiry(t *testing.T) {
	mr, client := setupRedis(t)
	l := NewRedisLocker(client, zap.NewNop())
	ctx := context.Background()

	acquired, err := l.Acquire(ctx, testKey, 30*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	// Never released, the claim lapses on its own.
	mr.FastForward(31 * time.Second)

	acquired, err = l.Acquire(ctx, testKey, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired, "expired claim should be acquirable")
}

func TestRedisLocker_SingleWinner(t *testing.T) {
	_, client := setupRedis(t)
	ctx := context.Background()

	const instances = 5
	results := make(chan bool, instances)
	for i := 0; i < instances; i++ {
		go func() {
			l := NewRedisLocker(client, zap.NewNop())
			acquired, _ := l.Acquire(ctx, testKey, 2*time.Second)
			results <- acquired
		}()
	}

	winners := 0
	for i := 0; i < instances; i++ {
		if <-results {
			winners++
		}
	}

	assert.Equal(t, 1, winners, "exactly one instance should win the claim")
}

func TestRedisLocker_CanceledContext(t *testing.T) {
	_, client := setupRedis(t)
	l := NewRedisLocker(client, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := l.Acquire(ctx, testKey, 5*time.Second)
	assert.Error(t, err)
	assert.False(t, acquired)
}

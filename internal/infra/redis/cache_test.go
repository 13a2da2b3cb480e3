package redis

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

const testKeyPrefix = "search-demo"

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis, func()) {
	t.Helper()

	// Create an in-memory Redis instance for testing
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewCache(client, zap.NewNop(), testKeyPrefix)

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestCache_SetAndGet(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()
	payload := []byte(`{"count":2}`)

	err := cache.Set(ctx, "bm25:abc", payload, time.Minute)
	require.NoError(t, err)

	got, err := cache.Get(ctx, "bm25:abc")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCache_GetMissing(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	got, err := cache.Get(context.Background(), "bm25:nope")
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, got)
}

func TestCache_KeysAreNamespaced(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()

	err := cache.Set(context.Background(), "bm25:abc", []byte("x"), time.Minute)
	require.NoError(t, err)

	assert.True(t, mr.Exists(testKeyPrefix+":bm25:abc"), "stored key should carry the prefix")
	assert.False(t, mr.Exists("bm25:abc"))
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()

	err := cache.Set(ctx, "bm25:abc", []byte("x"), 30*time.Second)
	require.NoError(t, err)

	// miniredis advances time manually
	mr.FastForward(31 * time.Second)

	got, err := cache.Get(ctx, "bm25:abc")
	require.NoError(t, err)
	assert.Nil(t, got, "expired entries read as misses")
}

func TestCache_Delete(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "bm25:abc", []byte("x"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "bm25:abc"))

	got, err := cache.Get(ctx, "bm25:abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, cache.Delete(ctx, "bm25:abc"), "deleting a missing key is fine")
}

func TestCache_Clear(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "bm25:a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "facets:b", []byte("2"), time.Minute))

	// A foreign key outside our namespace must survive the clear.
	mr.Set("other-app:key", "keep")

	require.NoError(t, cache.Clear(ctx))

	got, err := cache.Get(ctx, "bm25:a")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = cache.Get(ctx, "facets:b")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.True(t, mr.Exists("other-app:key"), "clear must not touch other namespaces")
}

func TestCache_ClearEmpty(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	assert.NoError(t, cache.Clear(context.Background()))
}

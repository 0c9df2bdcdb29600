package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRedisStore_MarkAndCheck(t *testing.T) {
	ctx := context.Background()
	store := setupTestRedis(t)

	seen, err := store.HasSeen(ctx, "app1", "us", "rev1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.MarkSeen(ctx, "app1", "us", "rev1"))

	seen, err = store.HasSeen(ctx, "app1", "us", "rev1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.HasSeen(ctx, "app1", "gb", "rev1")
	require.NoError(t, err)
	assert.False(t, seen, "region is part of the key")
}

func TestRedisStore_MarkSeenIdempotent(t *testing.T) {
	ctx := context.Background()
	store := setupTestRedis(t)

	require.NoError(t, store.MarkSeen(ctx, "app1", "us", "rev1"))
	require.NoError(t, store.MarkSeen(ctx, "app1", "us", "rev1"))

	seen, err := store.HasSeen(ctx, "app1", "us", "rev1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestNew_RedisDSN(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := New(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &RedisStore{}, store)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "redis://bad url with spaces")
	require.Error(t, err)
}

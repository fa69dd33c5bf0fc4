//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziwei/internal/chart/store"
	"ziwei/pkg/platform/sentinel"
	"ziwei/pkg/testutil/containers"
)

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	cache := store.NewRedisCache(rc.Client)

	t.Run("get and set", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		_, err := cache.Get(ctx, "k1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		require.NoError(t, cache.Set(ctx, "k1", []byte("v1"), time.Minute))
		got, err := cache.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		require.NoError(t, cache.Set(ctx, "short", []byte("v"), 100*time.Millisecond))
		time.Sleep(200 * time.Millisecond)

		_, err := cache.Get(ctx, "short")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("recent is newest first and deduplicated", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		require.NoError(t, cache.Set(ctx, "a", []byte("A"), time.Minute))
		require.NoError(t, cache.Set(ctx, "b", []byte("B"), time.Minute))
		require.NoError(t, cache.Set(ctx, "a", []byte("A2"), time.Minute))

		recent, err := cache.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, []byte("A2"), recent[0])
		assert.Equal(t, []byte("B"), recent[1])
	})

	t.Run("recent skips expired payloads", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		require.NoError(t, cache.Set(ctx, "gone", []byte("G"), 100*time.Millisecond))
		require.NoError(t, cache.Set(ctx, "kept", []byte("K"), time.Minute))
		time.Sleep(200 * time.Millisecond)

		recent, err := cache.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, []byte("K"), recent[0])
	})
}

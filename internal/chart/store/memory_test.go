package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziwei/pkg/platform/sentinel"
	"ziwei/pkg/requestcontext"
)

func ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func TestInMemoryCacheGetSet(t *testing.T) {
	cache := NewInMemoryCache(8)
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	_, err := cache.Get(ctxAt(now), "k1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, cache.Set(ctxAt(now), "k1", []byte("v1"), time.Hour))

	got, err := cache.Get(ctxAt(now.Add(30*time.Minute)), "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	_, err = cache.Get(ctxAt(now.Add(2*time.Hour)), "k1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "entry expires after its TTL")
}

func TestInMemoryCacheRecentIsNewestFirst(t *testing.T) {
	cache := NewInMemoryCache(8)
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Set(ctxAt(now), "a", []byte("A"), time.Hour))
	require.NoError(t, cache.Set(ctxAt(now.Add(time.Minute)), "b", []byte("B"), time.Hour))
	require.NoError(t, cache.Set(ctxAt(now.Add(2*time.Minute)), "c", []byte("C"), time.Hour))

	recent, err := cache.Recent(ctxAt(now.Add(3*time.Minute)), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, []byte("C"), recent[0])
	assert.Equal(t, []byte("B"), recent[1])

	// Re-setting promotes without duplicating.
	require.NoError(t, cache.Set(ctxAt(now.Add(4*time.Minute)), "a", []byte("A2"), time.Hour))
	recent, err = cache.Recent(ctxAt(now.Add(5*time.Minute)), 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []byte("A2"), recent[0])
}

func TestInMemoryCacheEvictsBeyondCapacity(t *testing.T) {
	cache := NewInMemoryCache(2)
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctxAt(now.Add(time.Duration(i)*time.Minute)), key, []byte(key), time.Hour))
	}

	_, err := cache.Get(ctxAt(now.Add(5*time.Minute)), "a")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "oldest key is evicted")

	got, err := cache.Get(ctxAt(now.Add(5*time.Minute)), "c")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
}

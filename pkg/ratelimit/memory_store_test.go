package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight/website/pkg/ratelimit"
)

func newMemoryStore(t *testing.T) *ratelimit.MemoryStore {
	t.Helper()
	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(50 * time.Millisecond))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMemoryStore_IncrementIfBelow(t *testing.T) {
	t.Parallel()

	t.Run("first request opens a window", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)

		allowed, current, ttl, err := store.IncrementIfBelow(context.Background(), "email:a@b.co", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, int64(1), current)
		assert.Equal(t, time.Hour, ttl)
	})

	t.Run("denied request is not counted", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)
		ctx := context.Background()

		for i := 1; i <= 3; i++ {
			allowed, current, _, err := store.IncrementIfBelow(ctx, "k", 3, time.Hour)
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, int64(i), current)
		}

		for range 2 {
			allowed, current, _, err := store.IncrementIfBelow(ctx, "k", 3, time.Hour)
			require.NoError(t, err)
			assert.False(t, allowed)
			assert.Equal(t, int64(3), current)
		}

		current, _, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, int64(3), current)
	})

	t.Run("expired window starts over", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)
		ctx := context.Background()

		_, _, _, err := store.IncrementIfBelow(ctx, "k", 1, 20*time.Millisecond)
		require.NoError(t, err)

		allowed, _, _, err := store.IncrementIfBelow(ctx, "k", 1, 20*time.Millisecond)
		require.NoError(t, err)
		assert.False(t, allowed)

		time.Sleep(40 * time.Millisecond)

		allowed, current, _, err := store.IncrementIfBelow(ctx, "k", 1, 20*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, int64(1), current)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)
		ctx := context.Background()

		_, _, _, _ = store.IncrementIfBelow(ctx, "a", 1, time.Hour)
		allowed, _, _, err := store.IncrementIfBelow(ctx, "b", 1, time.Hour)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("concurrent callers never exceed the limit", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)
		ctx := context.Background()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			granted int
		)
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				allowed, _, _, err := store.IncrementIfBelow(ctx, "shared", 3, time.Hour)
				if err == nil && allowed {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 3, granted)
	})
}

func TestMemoryStore_Get(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(t)
	ctx := context.Background()

	current, ttl, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, current)
	assert.Zero(t, ttl)

	_, _, _, _ = store.IncrementIfBelow(ctx, "k", 3, time.Hour)
	current, ttl, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestMemoryStore_SlidingWindow(t *testing.T) {
	t.Parallel()

	t.Run("records until limit", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)
		ctx := context.Background()
		now := time.Now()

		for i := range 3 {
			ok, count, err := store.RecordTimestampIfAllowed(ctx, "k", now.Add(time.Duration(i)*time.Millisecond), time.Hour, 3)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, int64(i+1), count)
		}

		ok, count, err := store.RecordTimestampIfAllowed(ctx, "k", now.Add(5*time.Millisecond), time.Hour, 3)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(3), count)

		inWindow, err := store.CountInWindow(ctx, "k", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(3), inWindow)
	})

	t.Run("old timestamps slide out", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore(t)
		ctx := context.Background()
		now := time.Now()

		ok, _, err := store.RecordTimestampIfAllowed(ctx, "k", now.Add(-2*time.Hour), time.Hour, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, count, err := store.RecordTimestampIfAllowed(ctx, "k", now, time.Hour, 1)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1), count)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(t)
	ctx := context.Background()

	for i := range 3 {
		key := fmt.Sprintf("k%d", i)
		_, _, _, _ = store.IncrementIfBelow(ctx, key, 1, time.Hour)
		_, _, _ = store.RecordTimestampIfAllowed(ctx, key, time.Now(), time.Hour, 1)
	}

	require.NoError(t, store.Delete(ctx, "k1"))

	current, _, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Zero(t, current)

	count, err := store.CountInWindow(ctx, "k1", time.Hour)
	require.NoError(t, err)
	assert.Zero(t, count)

	current, _, err = store.Get(ctx, "k2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)
}

func TestMemoryStore_Close(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

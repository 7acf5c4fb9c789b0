package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CleanupPrunesStaleWindows(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	now := time.Now()

	_, _, err := s.RecordTimestampIfAllowed(ctx, "stale", now.Add(-2*time.Minute), time.Minute, 3)
	require.NoError(t, err)
	_, _, err = s.RecordTimestampIfAllowed(ctx, "mixed", now.Add(-2*time.Minute), time.Minute, 3)
	require.NoError(t, err)
	_, _, err = s.RecordTimestampIfAllowed(ctx, "mixed", now, time.Minute, 3)
	require.NoError(t, err)

	s.cleanup()

	s.mu.RLock()
	defer s.mu.RUnlock()

	assert.NotContains(t, s.windows, "stale", "never revisited keys are dropped")
	require.Contains(t, s.windows, "mixed")
	assert.Len(t, s.windows["mixed"].timestamps, 1, "expired timestamps are pruned")
}

func TestMemoryStore_RecordSurvivesConcurrentCleanup(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 1000 {
			s.cleanup()
		}
	}()

	for i := range 1000 {
		allowed, _, err := s.RecordTimestampIfAllowed(ctx, "k", time.Now(), time.Minute, 1<<20)
		require.NoError(t, err)
		require.True(t, allowed, "attempt %d", i)
	}
	<-done

	count, err := s.CountInWindow(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), count, "no timestamp was written to a dropped window")
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements an in-memory store for rate limiting.
// It backs both the fixed window and the sliding window algorithms.
// State is local to the process: several replicas each keep their own counters.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	windows map[string]*slidingWindow

	cleanupInterval time.Duration
	initialCapacity int
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type bucket struct {
	count     int64
	expiresAt time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration // most recent window length, used by cleanup
	mu         sync.Mutex
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for expired entries.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// WithInitialCapacity sets the initial capacity for sliding window timestamps.
func WithInitialCapacity(capacity int) MemoryStoreOption {
	return func(s *MemoryStore) {
		if capacity > 0 {
			s.initialCapacity = capacity
		}
	}
}

// NewMemoryStore creates a new in-memory store with automatic cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		buckets:         make(map[string]*bucket),
		windows:         make(map[string]*slidingWindow),
		cleanupInterval: 1 * time.Minute,
		initialCapacity: 8,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// IncrementIfBelow implements the fixed window check-and-increment.
func (s *MemoryStore) IncrementIfBelow(ctx context.Context, key string, limit int, window time.Duration) (bool, int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	b, exists := s.buckets[key]

	if exists && now.After(b.expiresAt) {
		delete(s.buckets, key)
		exists = false
	}

	if !exists {
		s.buckets[key] = &bucket{
			count:     1,
			expiresAt: now.Add(window),
		}
		return true, 1, window, nil
	}

	ttl := b.expiresAt.Sub(now)
	if b.count >= int64(limit) {
		return false, b.count, ttl, nil
	}

	b.count++
	return true, b.count, ttl, nil
}

// Get returns the current fixed window counter value.
func (s *MemoryStore) Get(ctx context.Context, key string) (int64, time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.buckets[key]
	if !exists {
		return 0, 0, nil
	}

	now := time.Now()
	if now.After(b.expiresAt) {
		return 0, 0, nil
	}

	return b.count, b.expiresAt.Sub(now), nil
}

// Delete removes the given key from both stores.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, key)
	delete(s.windows, key)
	return nil
}

// RecordTimestampIfAllowed records timestamp in the sliding window for key
// when fewer than limit timestamps fall inside the window.
func (s *MemoryStore) RecordTimestampIfAllowed(ctx context.Context, key string, timestamp time.Time, window time.Duration, limit int) (bool, int64, error) {
	s.mu.Lock()
	sw, exists := s.windows[key]
	if !exists {
		sw = &slidingWindow{
			timestamps: make([]time.Time, 0, s.initialCapacity),
		}
		s.windows[key] = sw
	}
	// Lock the window before releasing the map so cleanup cannot drop it
	// between lookup and write.
	sw.mu.Lock()
	s.mu.Unlock()
	defer sw.mu.Unlock()

	sw.window = window
	sw.timestamps = pruneBefore(sw.timestamps, timestamp.Add(-window))

	count := int64(len(sw.timestamps))
	if count >= int64(limit) {
		return false, count, nil
	}

	sw.timestamps = append(sw.timestamps, timestamp)
	return true, count + 1, nil
}

// CountInWindow returns the number of timestamps within the sliding window.
func (s *MemoryStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.RLock()
	sw, exists := s.windows[key]
	s.mu.RUnlock()

	if !exists {
		return 0, nil
	}

	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.timestamps = pruneBefore(sw.timestamps, time.Now().Add(-window))
	return int64(len(sw.timestamps)), nil
}

// pruneBefore drops timestamps at or before cutoff.
func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	return valid
}

// cleanupLoop runs periodically to remove expired entries.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

// cleanup removes expired buckets and prunes sliding windows, dropping the
// ones left empty.
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	for key, b := range s.buckets {
		if now.After(b.expiresAt) {
			delete(s.buckets, key)
		}
	}

	for key, sw := range s.windows {
		sw.mu.Lock()
		if sw.window > 0 {
			sw.timestamps = pruneBefore(sw.timestamps, now.Add(-sw.window))
		}
		if len(sw.timestamps) == 0 {
			delete(s.windows, key)
		}
		sw.mu.Unlock()
	}
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

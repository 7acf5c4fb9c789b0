package ratelimit

import (
	"context"
	"time"
)

// FixedWindow implements a fixed window counter. The first request for a key
// opens a window of the configured length; up to limit requests are allowed
// inside it, later ones are denied without being counted.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
}

// NewFixedWindow creates a new fixed window rate limiter.
func NewFixedWindow(store Store, limit int, window time.Duration) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	return &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
	}, nil
}

// Allow checks if a request is allowed for the given key.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	allowed, current, ttl, err := fw.store.IncrementIfBelow(ctx, key, fw.limit, fw.window)
	if err != nil {
		return nil, err
	}

	return &Result{
		Allowed:   allowed,
		Limit:     fw.limit,
		Remaining: max(0, fw.limit-int(current)),
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

// Status returns the current rate limit status without consuming a slot.
func (fw *FixedWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	current, ttl, err := fw.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	remaining := fw.limit - int(current)

	return &Result{
		Allowed:   remaining > 0,
		Limit:     fw.limit,
		Remaining: max(0, remaining),
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

// Reset resets the rate limit for the given key.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}

	return fw.store.Delete(ctx, key)
}

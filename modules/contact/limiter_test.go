package contact_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight/website/modules/contact"
	"github.com/northlight/website/pkg/ratelimit"
	pkgredis "github.com/northlight/website/pkg/redis"
)

// keyLimiter denies keys with the given prefix and records every key seen.
type keyLimiter struct {
	mu       sync.Mutex
	keys     []string
	denyPref string
	err      error
}

func (l *keyLimiter) Allow(_ context.Context, key string) (*ratelimit.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	if l.err != nil {
		return nil, l.err
	}
	allowed := l.denyPref == "" || !strings.HasPrefix(key, l.denyPref)
	return &ratelimit.Result{Allowed: allowed, Limit: 3}, nil
}

func (l *keyLimiter) Status(context.Context, string) (*ratelimit.Result, error) {
	return &ratelimit.Result{Allowed: true}, nil
}

func (l *keyLimiter) Reset(context.Context, string) error { return nil }

func staticFactory(lim ratelimit.Limiter) contact.BackendFactory {
	return func(context.Context) *contact.Backend {
		return &contact.Backend{Limiter: lim, Name: "test"}
	}
}

func TestSubmissionLimiter_Keys(t *testing.T) {
	t.Parallel()

	lim := &keyLimiter{}
	sl := contact.NewSubmissionLimiter(staticFactory(lim), hasher, discard)

	assert.True(t, sl.Check(context.Background(), "ana@example.com", "203.0.113.7"))
	assert.Equal(t, []string{
		"email:ana@example.com",
		"ip:" + hasher.IP("203.0.113.7"),
	}, lim.keys)
	assert.NotContains(t, strings.Join(lim.keys, " "), "203.0.113.7")
}

func TestSubmissionLimiter_EmailFirst(t *testing.T) {
	t.Parallel()

	lim := &keyLimiter{denyPref: "email:"}
	sl := contact.NewSubmissionLimiter(staticFactory(lim), hasher, discard)

	assert.False(t, sl.Check(context.Background(), "ana@example.com", "203.0.113.7"))
	assert.Equal(t, []string{"email:ana@example.com"}, lim.keys)
}

func TestSubmissionLimiter_AddressAxis(t *testing.T) {
	t.Parallel()

	lim := &keyLimiter{denyPref: "ip:"}
	sl := contact.NewSubmissionLimiter(staticFactory(lim), hasher, discard)

	assert.False(t, sl.Check(context.Background(), "ana@example.com", "203.0.113.7"))
	assert.Len(t, lim.keys, 2)
}

func TestSubmissionLimiter_FailsOpen(t *testing.T) {
	t.Parallel()

	lim := &keyLimiter{err: errors.New("connection reset")}
	sl := contact.NewSubmissionLimiter(staticFactory(lim), hasher, discard)

	assert.True(t, sl.Check(context.Background(), "ana@example.com", "203.0.113.7"))
	assert.Len(t, lim.keys, 2)
}

func TestSubmissionLimiter_ResolvesOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	factory := func(ctx context.Context) *contact.Backend {
		calls.Add(1)
		return &contact.Backend{Limiter: &keyLimiter{}, Name: "test"}
	}
	sl := contact.NewSubmissionLimiter(factory, hasher, discard)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sl.Check(context.Background(), "ana@example.com", "203.0.113.7")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "test", sl.Backend(context.Background()).Name)
	assert.NoError(t, sl.Close())
}

func TestSubmissionLimiter_ResolutionIgnoresCancellation(t *testing.T) {
	t.Parallel()

	var resolveErr error
	factory := func(ctx context.Context) *contact.Backend {
		resolveErr = ctx.Err()
		return &contact.Backend{Limiter: &keyLimiter{}, Name: "test"}
	}
	sl := contact.NewSubmissionLimiter(factory, hasher, discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sl.Backend(ctx)

	assert.NoError(t, resolveErr)
}

func TestSubmissionLimiter_CloseBeforeUse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	factory := func(context.Context) *contact.Backend {
		calls.Add(1)
		return &contact.Backend{Limiter: &keyLimiter{}, Name: "test"}
	}
	sl := contact.NewSubmissionLimiter(factory, hasher, discard)

	require.NoError(t, sl.Close())
	assert.True(t, sl.Check(context.Background(), "ana@example.com", "203.0.113.7"))
	assert.Zero(t, calls.Load())
}

func TestNewBackend_Memory(t *testing.T) {
	t.Parallel()

	backend := contact.NewBackend(pkgredis.Config{}, 3, time.Hour, discard)(context.Background())
	t.Cleanup(func() { _ = backend.Close() })
	require.Equal(t, contact.BackendMemory, backend.Name)

	ctx := context.Background()
	for i := range 3 {
		res, err := backend.Allow(ctx, "email:ana@example.com")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d", i+1)
	}

	for range 2 {
		res, err := backend.Allow(ctx, "email:ana@example.com")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
	}

	// Denied attempts are not counted.
	status, err := backend.Status(ctx, "email:ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Remaining)
	assert.Equal(t, 3, status.Limit)
}

func TestNewBackend_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	backend := contact.NewBackend(pkgredis.Config{
		ConnectionURL:  "redis://" + mr.Addr() + "/0",
		RetryAttempts:  1,
		ConnectTimeout: time.Second,
	}, 3, time.Hour, discard)(context.Background())
	t.Cleanup(func() { _ = backend.Close() })

	require.Equal(t, contact.BackendRedis, backend.Name)

	ctx := context.Background()
	for range 3 {
		res, err := backend.Allow(ctx, "email:ana@example.com")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := backend.Allow(ctx, "email:ana@example.com")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	assert.True(t, mr.Exists("contact:ratelimit:email:ana@example.com"))
}

func TestNewBackend_RedisUnreachableFallsBack(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	backend := contact.NewBackend(pkgredis.Config{
		ConnectionURL:  "redis://" + addr + "/0",
		RetryAttempts:  1,
		ConnectTimeout: 500 * time.Millisecond,
	}, 3, time.Hour, discard)(context.Background())
	t.Cleanup(func() { _ = backend.Close() })

	assert.Equal(t, contact.BackendMemory, backend.Name)
	res, err := backend.Allow(context.Background(), "ip:abc")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestBackend_CloseNil(t *testing.T) {
	t.Parallel()

	var b *contact.Backend
	assert.NoError(t, b.Close())
}

func TestSubmissionLimiter_Healthcheck(t *testing.T) {
	t.Parallel()

	t.Run("memory backend", func(t *testing.T) {
		t.Parallel()

		limiter := contact.NewSubmissionLimiter(contact.NewBackend(pkgredis.Config{}, 3, time.Hour, discard), hasher, discard)
		t.Cleanup(func() { _ = limiter.Close() })

		assert.NoError(t, limiter.Healthcheck(context.Background()))
	})

	t.Run("redis backend reports lost connection", func(t *testing.T) {
		t.Parallel()

		mr, err := miniredis.Run()
		require.NoError(t, err)

		limiter := contact.NewSubmissionLimiter(contact.NewBackend(pkgredis.Config{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		}, 3, time.Hour, discard), hasher, discard)
		t.Cleanup(func() { _ = limiter.Close() })

		ctx := context.Background()
		require.NoError(t, limiter.Healthcheck(ctx))
		assert.Equal(t, contact.BackendRedis, limiter.Backend(ctx).Name)

		mr.Close()
		assert.ErrorIs(t, limiter.Healthcheck(ctx), pkgredis.ErrHealthcheckFailed)
	})
}

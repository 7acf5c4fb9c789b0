package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/northlight/website/pkg/idhash"
	"github.com/northlight/website/pkg/logger"
	"github.com/northlight/website/pkg/ratelimit"
	pkgredis "github.com/northlight/website/pkg/redis"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"

	redisKeyPrefix = "contact:ratelimit:"
)

// Backend is a resolved rate limiter together with the resources it holds.
type Backend struct {
	ratelimit.Limiter
	Name   string
	closer io.Closer
	ping   func(context.Context) error
}

// Healthcheck pings the backend's connection. The in-process backend is
// always healthy.
func (b *Backend) Healthcheck(ctx context.Context) error {
	if b == nil || b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the backend's connection or cleanup goroutine.
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// BackendFactory builds the rate limiter backend. It must always return a
// usable backend; connection problems are handled by falling back.
type BackendFactory func(ctx context.Context) *Backend

// NewBackend returns a factory that prefers a Redis sliding window when
// redisCfg is enabled and falls back to an in-process fixed window otherwise
// or when Redis cannot be reached. The in-process window is only correct for
// a single process.
func NewBackend(redisCfg pkgredis.Config, limit int, window time.Duration, log *slog.Logger) BackendFactory {
	return func(ctx context.Context) *Backend {
		if redisCfg.Enabled() {
			backend, err := newRedisBackend(ctx, redisCfg, limit, window)
			if err == nil {
				log.InfoContext(ctx, "using distributed rate limiter", logger.Backend(BackendRedis))
				return backend
			}
			log.ErrorContext(ctx, "distributed rate limiter unavailable, falling back to in-process tracking",
				logger.Backend(BackendMemory),
				logger.Error(err),
			)
		} else {
			log.WarnContext(ctx, "distributed rate limiter not configured, using in-process tracking",
				logger.Backend(BackendMemory),
			)
		}
		return newMemoryBackend(limit, window)
	}
}

func newRedisBackend(ctx context.Context, cfg pkgredis.Config, limit int, window time.Duration) (*Backend, error) {
	client, err := pkgredis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix(redisKeyPrefix))
	if err != nil {
		return nil, errors.Join(err, client.Close())
	}

	limiter, err := ratelimit.NewSlidingWindow(store, limit, window)
	if err != nil {
		return nil, errors.Join(err, client.Close())
	}

	return &Backend{
		Limiter: limiter,
		Name:    BackendRedis,
		closer:  client,
		ping:    pkgredis.Healthcheck(client),
	}, nil
}

func newMemoryBackend(limit int, window time.Duration) *Backend {
	store := ratelimit.NewMemoryStore()
	limiter, err := ratelimit.NewFixedWindow(store, limit, window)
	if err != nil {
		// Only reachable with a non-positive limit or window.
		_ = store.Close()
		return &Backend{Limiter: allowAll{}, Name: BackendMemory}
	}
	return &Backend{Limiter: limiter, Name: BackendMemory, closer: store}
}

// SubmissionLimiter enforces the per-sender submission limit on two axes:
// the e-mail address and the hashed client address. The backend is resolved
// on first use and kept for the lifetime of the limiter.
type SubmissionLimiter struct {
	factory BackendFactory
	hasher  idhash.Hasher
	log     *slog.Logger

	once    sync.Once
	backend *Backend
}

func NewSubmissionLimiter(factory BackendFactory, hasher idhash.Hasher, log *slog.Logger) *SubmissionLimiter {
	return &SubmissionLimiter{factory: factory, hasher: hasher, log: log}
}

// Check reports whether a submission from email and clientIP is allowed and
// records it. The e-mail axis is checked first; when it is exhausted the
// address counter is left untouched. Backend errors fail open.
func (l *SubmissionLimiter) Check(ctx context.Context, email, clientIP string) bool {
	backend := l.resolve(ctx)

	if !l.allow(ctx, backend, "email:"+email) {
		return false
	}
	return l.allow(ctx, backend, "ip:"+l.hasher.IP(clientIP))
}

// Backend returns the resolved backend, resolving it if needed.
func (l *SubmissionLimiter) Backend(ctx context.Context) *Backend {
	return l.resolve(ctx)
}

// Healthcheck reports whether the resolved backend is reachable.
func (l *SubmissionLimiter) Healthcheck(ctx context.Context) error {
	return l.resolve(ctx).Healthcheck(ctx)
}

// Close releases the backend if it was resolved.
func (l *SubmissionLimiter) Close() error {
	l.once.Do(func() {}) // no backend is created after Close
	return l.backend.Close()
}

func (l *SubmissionLimiter) resolve(ctx context.Context) *Backend {
	l.once.Do(func() {
		// Resolution outlives the request that triggered it.
		l.backend = l.factory(context.WithoutCancel(ctx))
	})
	if l.backend == nil {
		return &Backend{Limiter: allowAll{}, Name: BackendMemory}
	}
	return l.backend
}

func (l *SubmissionLimiter) allow(ctx context.Context, backend *Backend, key string) bool {
	res, err := backend.Allow(ctx, key)
	if err != nil {
		l.log.ErrorContext(ctx, "rate limit check failed, allowing submission",
			logger.Backend(backend.Name),
			logger.Error(err),
		)
		return true
	}
	return res.Allowed
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (*ratelimit.Result, error) {
	return &ratelimit.Result{Allowed: true}, nil
}

func (allowAll) Status(context.Context, string) (*ratelimit.Result, error) {
	return &ratelimit.Result{Allowed: true}, nil
}

func (allowAll) Reset(context.Context, string) error { return nil }

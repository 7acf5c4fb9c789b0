package ratelimit

import (
	"net/http"
	"strconv"
)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	onError        func(r *http.Request, err error)
	skipFunc       func(r *http.Request) bool
}

// WithOnLimitReached sets a custom handler for rate limit exceeded.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.onLimitReached = fn
	}
}

// WithOnError sets a callback invoked when the limiter fails.
// The request is still passed through.
func WithOnError(fn func(r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.onError = fn
	}
}

// WithSkipFunc sets a function to determine if rate limiting should be skipped.
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipFunc = fn
	}
}

// Middleware creates HTTP middleware that enforces rate limits using the
// provided Limiter and KeyFunc. Implements "fail open" policy - allows
// requests on errors to prevent outages from storage failures.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}

	config := &middlewareConfig{
		onLimitReached: func(w http.ResponseWriter, r *http.Request, result *Result) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.skipFunc != nil && config.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				if config.onError != nil {
					config.onError(r, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := result.RetryAfter().Seconds()
				if retryAfter < 1 {
					retryAfter = 1
				}

				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)))
				config.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server. Invalid arguments panic, since options
// are only built during startup.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	mustBePositive("WithReadTimeout", d)
	return func(c *config) { c.readTimeout = d }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	mustBePositive("WithReadHeaderTimeout", d)
	return func(c *config) { c.readHeaderTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	mustBePositive("WithWriteTimeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustBePositive("WithIdleTimeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long in-flight requests may take to finish
// once shutdown starts.
func WithShutdownTimeout(d time.Duration) Option {
	mustBePositive("WithShutdownTimeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the logger passed to hooks and used for lifecycle events.
// Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook registers a callback that runs once the listener is open.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback that runs after shutdown completes.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

func mustBePositive(name string, d time.Duration) {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
}

package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
	startHooks        []func(*slog.Logger)
	stopHooks         []func(*slog.Logger)
}

func defaultConfig() *config {
	return &config{
		addr:              ":8080",
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   15 * time.Second,
		logger:            slog.New(slog.DiscardHandler),
	}
}

// Server runs an http.Server until its context is cancelled or the process
// receives SIGINT or SIGTERM, then drains in-flight requests.
type Server struct {
	cfg *config

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	stopped  bool
}

func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Addr returns the bound listener address, or the configured address before
// Run has opened the listener.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.addr
}

// Run listens on the configured address and serves handler until ctx is
// done, a termination signal arrives or Shutdown is called. Listen and serve
// failures are wrapped with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil || s.stopped {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}

	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}

	baseCtx := context.WithoutCancel(ctx)
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.cfg.readTimeout,
		ReadHeaderTimeout: s.cfg.readHeaderTimeout,
		WriteTimeout:      s.cfg.writeTimeout,
		IdleTimeout:       s.cfg.idleTimeout,
		ErrorLog:          slog.NewLogLogger(s.cfg.logger.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	s.srv = srv
	s.listener = ln
	s.mu.Unlock()

	s.cfg.logger.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))
	for _, h := range s.cfg.startHooks {
		h(s.cfg.logger)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		s.cfg.logger.InfoContext(ctx, "http server shutting down")
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.cfg.logger.ErrorContext(ctx, "http server shutdown failed", slog.Any("error", err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown drains in-flight requests within the shutdown timeout. It is safe
// to call more than once and before Run.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	for _, h := range s.cfg.stopHooks {
		h(s.cfg.logger)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}

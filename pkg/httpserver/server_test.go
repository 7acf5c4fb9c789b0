package httpserver_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight/website/pkg/httpserver"
)

func startServer(t *testing.T, ctx context.Context, srv *httpserver.Server, handler http.Handler) (<-chan error, string) {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, handler) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", srv.Addr())
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	return done, "http://" + srv.Addr()
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		require.FailNow(t, "run did not return")
		return nil
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	var started, stopped atomic.Bool
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(time.Second),
		httpserver.WithStartHook(func(*slog.Logger) { started.Store(true) }),
		httpserver.WithStopHook(func(*slog.Logger) { stopped.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done, base := startServer(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}))

	resp, err := http.Get(base + "/ping")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.True(t, started.Load())
	assert.True(t, stopped.Load())

	require.NoError(t, srv.Shutdown(context.Background()), "repeated shutdown")
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	done, _ := startServer(t, context.Background(), srv, nil)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, waitDone(t, done))

	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()

	srv := httpserver.New()
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestRunListenError(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv := httpserver.New(httpserver.WithAddr(busy.Addr().String()))
	err = srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:9999"})
	assert.Equal(t, "127.0.0.1:9999", srv.Addr())

	assert.Equal(t, ":8080", httpserver.NewFromConfig(httpserver.Config{}).Addr())
}

func TestOptionsPanicOnInvalidInput(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(-time.Second) })
	assert.Panics(t, func() { httpserver.WithStartHook(nil) })
	assert.NotPanics(t, func() { httpserver.WithLogger(nil) })
}

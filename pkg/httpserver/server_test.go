package httpserver_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadbox/leadbox/pkg/httpserver"
	"github.com/leadbox/leadbox/pkg/logger"
)

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	addr := l.Addr().String()
	require.NoError(t, l.Close(), "close listener")
	return addr
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	srv := httpserver.New(httpserver.WithAddr(addr), httpserver.WithShutdownTimeout(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))
	}()

	var resp *http.Response
	var err error
	for range 50 {
		resp, err = http.Get("http://" + addr)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	require.NoError(t, err, "http get after 50 retries")
	require.NoError(t, resp.Body.Close(), "close body")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err, "run")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	srv := httpserver.NewFromConfig(httpserver.Config{
		Addr:            freeAddr(t),
		ShutdownTimeout: 100 * time.Millisecond,
	})
	require.NotNil(t, srv)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log := logger.New(logger.WithOutput(io.Discard))

	t.Run("liveness", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpserver.HealthCheckHandler(ctx, log)(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		probe := func(context.Context) error { return nil }
		httpserver.HealthCheckHandler(ctx, log, probe)(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("readiness failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		probe := func(context.Context) error { return context.DeadlineExceeded }
		httpserver.HealthCheckHandler(ctx, log, probe)(rec, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "NOT_READY", rec.Body.String())
	})
}

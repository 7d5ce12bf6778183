package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadbox/leadbox/pkg/ratelimit"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimit.Result, error) {
	return nil, errors.New("store down")
}
func (failingLimiter) Status(context.Context, string) (*ratelimit.Result, error) {
	return nil, errors.New("store down")
}
func (failingLimiter) Reset(context.Context, string) error { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareEnforcesLimit(t *testing.T) {
	t.Parallel()
	fw, _ := newLimiter(t, 2, time.Minute)

	handler := ratelimit.Middleware(fw, ratelimit.ByClientIP)(okHandler())

	for range 2 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/submissions", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submissions", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestMiddlewareFailsOpen(t *testing.T) {
	t.Parallel()
	handler := ratelimit.Middleware(failingLimiter{}, ratelimit.ByClientIP)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/submissions", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareSkipsEmptyKey(t *testing.T) {
	t.Parallel()
	fw, _ := newLimiter(t, 1, time.Minute)
	handler := ratelimit.Middleware(fw, func(*http.Request) string { return "" })(okHandler())

	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/submissions", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()
	key := ratelimit.Composite(ratelimit.ByClientIP, ratelimit.ByEndpoint)

	req := httptest.NewRequest("POST", "/submissions", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	assert.Equal(t, "10.0.0.3:POST:/submissions", key(req))
}

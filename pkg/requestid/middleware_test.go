package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadbox/leadbox/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Run("generates uuid when header absent", func(t *testing.T) {
		var fromCtx string
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = requestid.FromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		echoed := rec.Header().Get(requestid.Header)
		require.NotEmpty(t, echoed)
		assert.Equal(t, echoed, fromCtx)
		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
	})

	t.Run("keeps well-formed incoming id", func(t *testing.T) {
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(requestid.Header, "client-id-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-id-123", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed incoming id", func(t *testing.T) {
		handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(requestid.Header, "bad id with spaces!")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		echoed := rec.Header().Get(requestid.Header)
		assert.NotEqual(t, "bad id with spaces!", echoed)
		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
	})
}

func TestFromContextMissing(t *testing.T) {
	assert.Empty(t, requestid.FromContext(t.Context()))
}

package submission

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newTestHandler(repo Repository) *Handler {
	svc := newTestService(repo)
	return NewHandler(svc, testLogger())
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleCreate(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := postJSON(t, h, `{"name":"John Doe","email":"john@example.com","message":"Hello"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "John Doe", resp.Name)
		assert.Empty(t, resp.Phone)
	})

	t.Run("validation failure lists every field", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := postJSON(t, h, `{"name":"","email":"nope","message":""}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeError(t, rec)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Contains(t, env.Error.Details, "name")
		assert.Contains(t, env.Error.Details, "email")
		assert.Contains(t, env.Error.Details, "message")
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := postJSON(t, h, `{"name":"John","email":"john@example.com","message":"Hi","admin":true}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_request", decodeError(t, rec).Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := postJSON(t, h, `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("create middleware wraps only the post route", func(t *testing.T) {
		t.Parallel()

		deny := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			})
		}
		h := newTestHandler(&fakeRepo{}).Routes(deny)

		rec := postJSON(t, h, `{"name":"John","email":"john@example.com","message":"Hi"}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		rec = getPath(t, h, "/")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandleList(t *testing.T) {
	t.Parallel()

	t.Run("returns data with pagination", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{}
		h := newTestHandler(repo).Routes()
		for range 3 {
			rec := postJSON(t, h, `{"name":"John","email":"john@example.com","message":"Hi"}`)
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := getPath(t, h, "/")
		require.Equal(t, http.StatusOK, rec.Code)

		var page Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Len(t, page.Data, 3)
		assert.Equal(t, int64(3), page.Pagination.TotalItems)
		assert.Equal(t, 1, page.Pagination.TotalPages)
	})

	t.Run("empty store yields empty array", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := getPath(t, h, "/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("invalid query parameters", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			path string
		}{
			{"page zero", "/?page=0"},
			{"page not a number", "/?page=abc"},
			{"unknown sort field", "/?sortBy=phone"},
			{"unknown sort order", "/?sortOrder=sideways"},
			{"bad start date", "/?startDate=yesterday"},
			{"unknown parameter", "/?limit=50"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				h := newTestHandler(&fakeRepo{}).Routes()
				rec := getPath(t, h, tt.path)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{findErr: assert.AnError}).Routes()
		rec := getPath(t, h, "/")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_error", decodeError(t, rec).Error.Code)
	})
}

func TestHandleGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{}
		h := newTestHandler(repo).Routes()
		rec := postJSON(t, h, `{"name":"John","email":"john@example.com","message":"Hi"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = getPath(t, h, "/"+created.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		var fetched Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
		assert.Equal(t, created, fetched)
	})

	t.Run("well-formed id with no record returns empty object", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := getPath(t, h, "/"+bson.NewObjectID().Hex())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeRepo{}).Routes()
		rec := getPath(t, h, "/not-an-object-id")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_id", decodeError(t, rec).Error.Code)
	})
}

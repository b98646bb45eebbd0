package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReqID_GeneratesIdentifier(t *testing.T) {
	var seen string

	handler := Use(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}, NewReqID())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestNewReqID_HonorsCallerValue(t *testing.T) {
	var seen string

	handler := Use(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}, NewReqID())

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(HeaderRequestID, "caller-id-123")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "caller-id-123", seen)
	assert.Equal(t, "caller-id-123", w.Header().Get(HeaderRequestID))
}

func TestRequestID_MissingFromContext(t *testing.T) {
	assert.Empty(t, RequestID(t.Context()))
}

func TestNewCORS(t *testing.T) {
	handler := Use(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, NewCORS())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-Request-ID, X-API-Version", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestUse_Ordering(t *testing.T) {
	var order []string

	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Use(func(_ http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}, tag("outer"), tag("inner"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

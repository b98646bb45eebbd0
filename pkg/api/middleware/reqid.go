package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation identifier. A caller-supplied value
// is honored; otherwise a fresh one is generated. Every response echoes it.
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const reqIDKey ctxKey = iota

// NewReqID creates a middleware that attaches a correlation identifier to
// the request context and the response headers.
func NewReqID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), reqIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns the correlation identifier from the context, or an empty
// string when none is attached.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey).(string)

	return id
}

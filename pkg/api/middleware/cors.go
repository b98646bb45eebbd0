package middleware

import "net/http"

// NewCORS creates a middleware that attaches permissive cross-origin headers
// to every response. Preflight requests are answered by the OPTIONS route.
func NewCORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-API-Version")
			h.Set("Access-Control-Max-Age", "86400")

			next.ServeHTTP(w, r)
		})
	}
}

package api

import (
	"net/http"

	"github.com/chrisns/govreposcrape-sub006/pkg/api/middleware"
)

// newMux creates and returns a new HTTP ServeMux with the API's routes registered.
func (a *API) newMux() *http.ServeMux {
	mux := http.NewServeMux()

	withReqID := middleware.NewReqID()
	withCORS := middleware.NewCORS()

	// Health check.
	mux.Handle("GET /livez", middleware.Use(a.healthCheck, withReqID, withCORS))

	// Query API.
	mux.Handle("POST /api/v1/search", middleware.Use(a.search, withReqID, withCORS))
	mux.Handle("GET /api/v1/metrics", middleware.Use(a.metricsSnapshot, withReqID, withCORS))

	// CORS preflight for any path.
	mux.Handle("OPTIONS /", middleware.Use(a.preflight, withReqID, withCORS))

	return mux
}

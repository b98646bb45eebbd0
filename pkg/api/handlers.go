package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/chrisns/govreposcrape-sub006/pkg/core"
	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
)

// searchRequest is the inbound wire envelope for POST /api/v1/search.
type searchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit"`
}

// healthCheck verifies the server is running and returns 200 OK.
func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("Ok")); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write response", "error", err)

		return
	}
}

// preflight answers CORS preflight requests with no content; the permissive
// headers are attached by the CORS middleware.
func (a *API) preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// metricsSnapshot handles GET /api/v1/metrics - a read-only counter snapshot.
func (a *API) metricsSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, a.metrics.Snapshot())
}

// search handles POST /api/v1/search. It validates the wire envelope,
// dispatches to the orchestrator, and maps any failure through the error
// taxonomy.
func (a *API) search(w http.ResponseWriter, r *http.Request) {
	if v := r.Header.Get("X-API-Version"); v != "" && v != apiVersion {
		slog.WarnContext(r.Context(), "client API version mismatch", "got", v, "want", apiVersion)
	}

	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		a.writeError(w, r, errs.NewValidation(errs.CodeUnsupportedMedia, "request body must be application/json"))

		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, r, decodeError(err))

		return
	}

	limit := core.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	q, err := core.NewQuery(req.Query, limit)
	if err != nil {
		a.writeError(w, r, err)

		return
	}

	res, err := a.svc.Search(r.Context(), q)
	if err != nil {
		a.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, res)
}

// decodeError classifies a body decode failure into the taxonomy with a
// field-specific machine code where possible.
func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.NewValidation(errs.CodeBodyTooLarge, "request body exceeds 1KB")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "limit":
			return errs.NewValidation(errs.CodeInvalidLimit, "limit must be an integer")
		case "query":
			return errs.NewValidation(errs.CodeInvalidQuery, "query must be a string")
		}
	}

	return errs.NewValidation(errs.CodeInvalidBody, "invalid request body")
}

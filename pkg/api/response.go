package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/chrisns/govreposcrape-sub006/pkg/api/middleware"
	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
)

// errorBody is the stable wire shape of every failure response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

// writeError maps a failure through the error taxonomy to the appropriate
// status and body. Unclassified errors are logged with full detail locally
// and surfaced as a generic internal error with nothing leaked to the caller.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if v, ok := errs.AsValidation(err); ok {
		a.metrics.TrackError("validation")
		writeJSON(ctx, w, http.StatusBadRequest, errorBody{
			Error: errorDetail{Code: v.Code, Message: v.Message},
		})

		return
	}

	if s, ok := errs.AsService(err); ok {
		a.metrics.TrackError("service")
		slog.ErrorContext(ctx, "dependency unavailable",
			"code", s.Code,
			"request_id", middleware.RequestID(ctx),
			"error", err,
		)

		retryAfter := int(s.RetryAfter / time.Second)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeJSON(ctx, w, http.StatusServiceUnavailable, errorBody{
			Error: errorDetail{Code: s.Code, Message: s.Message, RetryAfter: retryAfter},
		})

		return
	}

	a.metrics.TrackError("internal")
	slog.ErrorContext(ctx, "unclassified failure",
		"request_id", middleware.RequestID(ctx),
		"error", err,
	)
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{
		Error: errorDetail{Code: errs.CodeInternal, Message: "internal server error"},
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "error", err)
	}
}

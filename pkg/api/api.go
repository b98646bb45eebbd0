// Package api provides the HTTP server exposing the code-search endpoint.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chrisns/govreposcrape-sub006/pkg/core"
	"github.com/chrisns/govreposcrape-sub006/pkg/metrics"
)

const (
	headerTimeout = 5 * time.Second
	// writeTimeout covers the worst case of a fully retried index call
	// (1s + 2s + 4s of backoff) with headroom for enrichment.
	writeTimeout = 30 * time.Second

	// maxBodyBytes is the request payload ceiling.
	maxBodyBytes = 1024

	// apiVersion is the informational protocol version; mismatches in the
	// X-API-Version header produce a warning, never a rejection.
	apiVersion = "1"
)

// API is the HTTP server for the query-serving pipeline.
type API struct {
	svc     Service
	metrics Metrics
	config  Config
}

// Config holds the configuration for the API server.
type Config struct {
	Listen string `mapstructure:"listen"`
}

// Service defines the interface for the query orchestrator.
type Service interface {
	Search(ctx context.Context, q core.Query) (*core.QueryResult, error)
}

// Metrics defines the counters the protocol layer records and exposes.
type Metrics interface {
	Snapshot() metrics.Snapshot
	TrackError(kind string)
}

// New creates a new API instance with the provided configuration, service,
// and metrics collector. It returns an error if the listen address is not
// specified.
func New(cfg Config, svc Service, m Metrics) (*API, error) {
	if cfg.Listen == "" {
		return nil, fmt.Errorf("listen address must be specified")
	}

	return &API{config: cfg, svc: svc, metrics: m}, nil
}

// Run starts the API server and handles graceful shutdown when the context
// is cancelled. If the server fails to start, it returns an error.
func (a *API) Run(ctx context.Context) error {
	s := &http.Server{
		Addr:              a.config.Listen,
		ReadHeaderTimeout: headerTimeout,
		WriteTimeout:      writeTimeout,
		Handler:           a.newMux(),
	}

	go func() {
		<-ctx.Done()

		err := s.Close()

		slog.WarnContext(ctx, "shutting down API server", "error", err)
	}()

	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}

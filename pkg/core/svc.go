// Package core provides the query-serving pipeline: validation, the
// retry-wrapped search index call, concurrent result enrichment with
// graceful degradation, and response mapping.
package core

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
	"github.com/chrisns/govreposcrape-sub006/pkg/retry"
)

// Observability thresholds. Exceeding one produces a diagnostic warning only;
// there is no cancellation or degraded-mode fallback.
const (
	DefaultSlowSearchThreshold = 800 * time.Millisecond
	DefaultSlowEnrichThreshold = 100 * time.Millisecond
	DefaultSlowQueryThreshold  = 2 * time.Second
)

// languageUnknown is substituted when no language can be inferred.
const languageUnknown = "Unknown"

// searchIndex defines the interface to the external semantic search index.
// Its ranking is opaque; matches are returned in index order.
type searchIndex interface {
	Search(ctx context.Context, text string, limit int) ([]Match, error)
}

// auxProber defines the lightweight metadata probe against the object store.
type auxProber interface {
	Head(ctx context.Context, key string) (AuxMetadata, error)
}

// queryExpander rewrites a query for better recall. Best-effort: failures
// only reduce response richness, never correctness.
type queryExpander interface {
	Expand(ctx context.Context, text string) (string, error)
}

// collector records pipeline outcomes.
type collector interface {
	TrackQueryResult(resultCount int)
	TrackQueryDuration(d time.Duration)
	TrackError(kind string)
}

// Service orchestrates the query pipeline: search, enrichment, mapping.
type Service struct {
	index       searchIndex
	prober      auxProber
	expander    queryExpander
	metrics     collector
	retryDelays []time.Duration
	slowSearch  time.Duration
	slowEnrich  time.Duration
	slowQuery   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithExpander enables best-effort query expansion.
func WithExpander(e queryExpander) Option {
	return func(s *Service) {
		s.expander = e
	}
}

// WithRetryDelays overrides the backoff sequence for the search index call.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(s *Service) {
		s.retryDelays = delays
	}
}

// WithThresholds overrides the slow-search, slow-enrichment, and slow-query
// warning thresholds.
func WithThresholds(search, enrich, query time.Duration) Option {
	return func(s *Service) {
		s.slowSearch = search
		s.slowEnrich = enrich
		s.slowQuery = query
	}
}

// New creates a Service with the provided dependencies. It panics if index,
// prober, or metrics is nil since the pipeline cannot run without them.
func New(index searchIndex, prober auxProber, metrics collector, opts ...Option) *Service {
	if index == nil || prober == nil || metrics == nil {
		panic("index, prober, and metrics must not be nil")
	}

	s := &Service{
		index:      index,
		prober:     prober,
		metrics:    metrics,
		slowSearch: DefaultSlowSearchThreshold,
		slowEnrich: DefaultSlowEnrichThreshold,
		slowQuery:  DefaultSlowQueryThreshold,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

// Search runs the full query pipeline and returns ordered public results
// with the elapsed time. Failures surface only through the error taxonomy:
// dependency errors as ServiceError after internal retries, everything
// unexpected wrapped so callers never see an unclassified internal type.
func (s *Service) Search(ctx context.Context, q Query) (*QueryResult, error) {
	start := time.Now()

	text := s.expandQuery(ctx, q.Text())

	matches, err := s.searchIndex(ctx, text, q.Limit())
	if err != nil {
		s.metrics.TrackError("search")

		if _, ok := errs.AsService(err); ok {
			return nil, err
		}

		return nil, errs.NewServiceWrap(errs.CodeSearchError, "search is temporarily unavailable", err)
	}

	if len(matches) == 0 {
		elapsed := time.Since(start)
		s.metrics.TrackQueryResult(0)
		s.metrics.TrackQueryDuration(elapsed)

		return &QueryResult{Results: []PublicResult{}, TookMs: elapsed.Milliseconds()}, nil
	}

	enriched := s.enrichAll(ctx, matches)

	results := make([]PublicResult, len(enriched))
	for i, e := range enriched {
		results[i] = toPublicResult(e)
	}

	elapsed := time.Since(start)
	s.metrics.TrackQueryResult(len(results))
	s.metrics.TrackQueryDuration(elapsed)

	if elapsed > s.slowQuery {
		slog.WarnContext(ctx, "slow query", "elapsed", elapsed, "results", len(results))
	}

	return &QueryResult{Results: results, TookMs: elapsed.Milliseconds()}, nil
}

// expandQuery attempts best-effort query expansion. Any failure falls back
// to the original text.
func (s *Service) expandQuery(ctx context.Context, text string) string {
	if s.expander == nil {
		return text
	}

	expanded, err := s.expander.Expand(ctx, text)
	if err != nil {
		slog.WarnContext(ctx, "query expansion failed, using original query", "error", err)
		s.metrics.TrackError("expansion")

		return text
	}

	return expanded
}

// searchIndex invokes the external index through the retry executor and
// flags slow responses.
func (s *Service) searchIndex(ctx context.Context, text string, limit int) ([]Match, error) {
	opts := []retry.Option{retry.WithFailureCode(errs.CodeSearchError)}
	if len(s.retryDelays) > 0 {
		opts = append(opts, retry.WithDelays(s.retryDelays...))
	}

	start := time.Now()

	matches, err := retry.Do(ctx, func(ctx context.Context) ([]Match, error) {
		return s.index.Search(ctx, text, limit)
	}, opts...)

	if elapsed := time.Since(start); elapsed > s.slowSearch {
		slog.WarnContext(ctx, "slow search index response", "elapsed", elapsed)
	}

	return matches, err
}

// toPublicResult maps an enriched match to the wire shape, substituting
// defaults for unavailable metadata: language "Unknown", zero stars, and the
// current time when neither push nor process timestamp is known.
func toPublicResult(e EnrichedMatch) PublicResult {
	meta := ResultMetadata{
		Language: detectLanguage(e.Artifact),
		URL:      e.Links.Primary,
	}

	if e.Aux != nil {
		switch {
		case !e.Aux.LastPushed.IsZero():
			meta.LastUpdated = e.Aux.LastPushed
		case !e.Aux.ProcessedAt.IsZero():
			meta.LastUpdated = e.Aux.ProcessedAt
		}

		if e.Aux.CanonicalURL != "" {
			meta.URL = e.Aux.CanonicalURL
		}
	}

	if meta.LastUpdated.IsZero() {
		meta.LastUpdated = time.Now()
	}

	return PublicResult{
		Repository: e.Repository.FullName(),
		Path:       e.Artifact,
		Snippet:    e.Text,
		Score:      e.Score,
		Metadata:   meta,
	}
}

// detectLanguage infers a repository language from the artifact filename
// using Chroma's lexer registry.
func detectLanguage(artifact string) string {
	if artifact == "" {
		return languageUnknown
	}

	lexer := lexers.Match(filepath.Base(artifact))
	if lexer == nil {
		return languageUnknown
	}

	return lexer.Config().Name
}

// Package cache implements the fail-safe freshness check used by the
// ingestion path to decide whether a repository needs reprocessing.
//
// The policy is fail-open: any ambiguity about freshness (missing entry,
// malformed entry, failed read) biases toward reprocessing rather than
// silently serving stale data. Write failures degrade future hit rate but
// never fail the operation that produced the data being cached.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
	"github.com/chrisns/govreposcrape-sub006/pkg/retry"
)

// StatusComplete marks an entry written after a fully processed repository.
const StatusComplete = "complete"

// kvStore defines the key-value operations the checker needs. Backed by the
// object store in production; eventual consistency is acceptable.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// tracker records cache check outcomes.
type tracker interface {
	TrackCacheCheck(hit bool)
	TrackError(kind string)
}

// Entry is the persisted cache record for a repository. An entry is
// trustworthy only when all three fields are present and well-typed; any
// other shape is treated identically to a miss.
type Entry struct {
	LastPushed  time.Time `json:"last_pushed"`
	ProcessedAt time.Time `json:"processed_at"`
	Status      string    `json:"status"`
}

// Reason explains a freshness decision.
type Reason string

const (
	ReasonHit   Reason = "cache-hit"
	ReasonMiss  Reason = "cache-miss"
	ReasonStale Reason = "stale-cache"
)

// Result is the outcome of a freshness check.
type Result struct {
	NeedsProcessing bool
	Reason          Reason
	Entry           *Entry
}

// Checker performs fail-open freshness checks against a key-value store.
type Checker struct {
	store       kvStore
	metrics     tracker
	writeDelays []time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithWriteDelays overrides the backoff sequence used for cache writes.
func WithWriteDelays(delays ...time.Duration) Option {
	return func(c *Checker) {
		c.writeDelays = delays
	}
}

// New creates a Checker over the given store, recording outcomes on metrics.
func New(store kvStore, metrics tracker, opts ...Option) *Checker {
	c := &Checker{store: store, metrics: metrics}

	for _, o := range opts {
		o(c)
	}

	return c
}

// Key returns the cache key for a repository identity.
func Key(org, name string) string {
	return "repo:" + org + "/" + name
}

// Check decides whether the repository identified by org/name needs
// reprocessing given its last observed push timestamp.
//
//	no entry / malformed entry / read failure -> miss (fail open)
//	entry.LastPushed == lastPushed            -> hit
//	entry.LastPushed != lastPushed            -> stale
//
// Check never returns an error: an unreadable store is indistinguishable
// from "never cached".
func (c *Checker) Check(ctx context.Context, org, name string, lastPushed time.Time) Result {
	key := Key(org, name)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		slog.DebugContext(ctx, "cache read failed, treating as miss", "key", key, "error", err)

		return c.track(Result{NeedsProcessing: true, Reason: ReasonMiss})
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		slog.DebugContext(ctx, "cache entry malformed, treating as miss", "key", key, "error", err)

		return c.track(Result{NeedsProcessing: true, Reason: ReasonMiss})
	}

	if entry.LastPushed.IsZero() || entry.ProcessedAt.IsZero() || entry.Status != StatusComplete {
		return c.track(Result{NeedsProcessing: true, Reason: ReasonMiss})
	}

	if entry.LastPushed.Equal(lastPushed) {
		return c.track(Result{NeedsProcessing: false, Reason: ReasonHit, Entry: &entry})
	}

	return c.track(Result{NeedsProcessing: true, Reason: ReasonStale, Entry: &entry})
}

// Update writes an entry through the retry executor. A write failure is
// logged and counted but never propagated: it must not fail the operation
// that produced the data being cached.
func (c *Checker) Update(ctx context.Context, org, name string, entry Entry) {
	key := Key(org, name)

	data, err := json.Marshal(entry)
	if err != nil {
		slog.WarnContext(ctx, "cache entry marshal failed, skipping update", "key", key, "error", err)
		c.metrics.TrackError("cache_write")

		return
	}

	opts := []retry.Option{retry.WithFailureCode(errs.CodeCacheError)}
	if len(c.writeDelays) > 0 {
		opts = append(opts, retry.WithDelays(c.writeDelays...))
	}

	_, err = retry.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.store.Put(ctx, key, data)
	}, opts...)
	if err != nil {
		slog.WarnContext(ctx, "cache update failed, continuing without cache", "key", key, "error", err)
		c.metrics.TrackError("cache_write")
	}
}

func (c *Checker) track(r Result) Result {
	c.metrics.TrackCacheCheck(r.Reason == ReasonHit)

	return r
}

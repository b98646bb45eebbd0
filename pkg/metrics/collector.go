// Package metrics provides process-local counters for pipeline observability.
//
// The Collector is pure aggregation: no I/O, no persistence. Counters reset
// to zero on process restart (or an explicit Reset call) by design. It is
// passed as an explicit dependency into every pipeline stage so tests can
// instantiate an isolated instance per case.
package metrics

import (
	"sync"
	"time"
)

// DefaultSlowQueryThreshold is the end-to-end duration above which a query is
// counted as slow. Observability signal only; slow requests still complete.
const DefaultSlowQueryThreshold = 2 * time.Second

// Snapshot is a point-in-time copy of all counters plus derived percentages.
type Snapshot struct {
	CacheChecks        uint64            `json:"cache_checks"`
	CacheHits          uint64            `json:"cache_hits"`
	QueriesTotal       uint64            `json:"queries_total"`
	EmptyResultQueries uint64            `json:"empty_result_queries"`
	SlowQueries        uint64            `json:"slow_queries"`
	ErrorsByType       map[string]uint64 `json:"errors_by_type"`
	CacheHitRate       float64           `json:"cache_hit_rate"`
	EmptyResultRate    float64           `json:"empty_result_rate"`
	SlowQueryRate      float64           `json:"slow_query_rate"`
}

// Collector accumulates counters across requests. All methods are safe for
// concurrent use; each logical increment is atomic under the mutex.
type Collector struct {
	mu                 sync.Mutex
	cacheChecks        uint64
	cacheHits          uint64
	queriesTotal       uint64
	emptyResultQueries uint64
	slowQueries        uint64
	errorsByType       map[string]uint64
	slowThreshold      time.Duration
}

// Option configures a Collector.
type Option func(*Collector)

// WithSlowQueryThreshold overrides the slow-query duration threshold.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.slowThreshold = d
		}
	}
}

// NewCollector creates an empty Collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		errorsByType:  make(map[string]uint64),
		slowThreshold: DefaultSlowQueryThreshold,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// TrackCacheCheck records a cache freshness check and whether it was a hit.
func (c *Collector) TrackCacheCheck(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cacheChecks++

	if hit {
		c.cacheHits++
	}
}

// TrackQueryResult records a completed query and its result count.
func (c *Collector) TrackQueryResult(resultCount int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queriesTotal++

	if resultCount == 0 {
		c.emptyResultQueries++
	}
}

// TrackQueryDuration records a query's end-to-end duration, counting it as
// slow when it exceeds the threshold.
func (c *Collector) TrackQueryDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d > c.slowThreshold {
		c.slowQueries++
	}
}

// TrackError records a categorized failure observation.
func (c *Collector) TrackError(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorsByType[kind]++
}

// Snapshot returns a copy of the current counters with derived rates.
// All rates return 0 when their denominator is 0.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	errCopy := make(map[string]uint64, len(c.errorsByType))
	for k, v := range c.errorsByType {
		errCopy[k] = v
	}

	return Snapshot{
		CacheChecks:        c.cacheChecks,
		CacheHits:          c.cacheHits,
		QueriesTotal:       c.queriesTotal,
		EmptyResultQueries: c.emptyResultQueries,
		SlowQueries:        c.slowQueries,
		ErrorsByType:       errCopy,
		CacheHitRate:       rate(c.cacheHits, c.cacheChecks),
		EmptyResultRate:    rate(c.emptyResultQueries, c.queriesTotal),
		SlowQueryRate:      rate(c.slowQueries, c.queriesTotal),
	}
}

// Reset zeroes all counters.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cacheChecks = 0
	c.cacheHits = 0
	c.queriesTotal = 0
	c.emptyResultQueries = 0
	c.slowQueries = 0
	c.errorsByType = make(map[string]uint64)
}

func rate(numerator, denominator uint64) float64 {
	if denominator == 0 {
		return 0
	}

	return float64(numerator) / float64(denominator) * 100
}

// Package retry provides a bounded retry-with-backoff wrapper for outbound calls.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
)

// DefaultMaxAttempts is the number of invocations before a call is given up on.
const DefaultMaxAttempts = 3

// defaultDelays is the wait sequence between attempts. When attempts exceed
// the sequence length the last delay is reused.
var defaultDelays = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

type config struct {
	maxAttempts int
	delays      []time.Duration
	code        string
}

// Option configures a retried call.
type Option func(*config)

// WithMaxAttempts overrides the default attempt bound.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithDelays overrides the wait sequence between attempts.
func WithDelays(delays ...time.Duration) Option {
	return func(c *config) {
		if len(delays) > 0 {
			c.delays = delays
		}
	}
}

// WithFailureCode sets the machine code identifying the calling context on
// the ServiceError raised after exhaustion (e.g. SEARCH_ERROR, CACHE_ERROR).
func WithFailureCode(code string) Option {
	return func(c *config) {
		c.code = code
	}
}

// Do invokes op up to the configured attempt bound, waiting between attempts
// according to the delay sequence. The wait is a suspension point: it blocks
// only the current call and honors context cancellation.
//
// On exhaustion Do returns an errs.ServiceError carrying the configured code,
// the fixed retry-after delay, and the last underlying error as its cause.
// There is no jitter and no circuit breaker; retries are purely time-spaced
// and attempt-bounded.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts ...Option) (T, error) {
	cfg := config{
		maxAttempts: DefaultMaxAttempts,
		delays:      defaultDelays,
		code:        errs.CodeFetchFailed,
	}

	for _, o := range opts {
		o(&cfg)
	}

	var (
		zero    T
		lastErr error
	)

	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, delayFor(cfg.delays, attempt-2)); err != nil {
				return zero, fmt.Errorf("retry aborted: %w", err)
			}
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		lastErr = err

		slog.DebugContext(ctx, "operation attempt failed",
			"attempt", attempt,
			"max_attempts", cfg.maxAttempts,
			"error", err,
		)
	}

	msg := fmt.Sprintf("operation failed after %d attempts", cfg.maxAttempts)

	return zero, errs.NewServiceWrap(cfg.code, msg, lastErr)
}

// delayFor returns the wait before the attempt at the given zero-based index,
// reusing the last delay when the sequence is shorter than the attempt count.
func delayFor(delays []time.Duration, idx int) time.Duration {
	if idx >= len(delays) {
		idx = len(delays) - 1
	}

	return delays[idx]
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

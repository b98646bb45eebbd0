package core

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// enrichOne augments a single match with repository identity, quick-launch
// links, and best-effort auxiliary metadata. It never fails: a malformed
// locator degrades to the minimal enrichment (sentinel identity, empty
// links, no metadata) and a failed metadata probe degrades to absent
// metadata only.
func (s *Service) enrichOne(ctx context.Context, m Match) EnrichedMatch {
	start := time.Now()

	defer func() {
		if elapsed := time.Since(start); elapsed > s.slowEnrich {
			slog.WarnContext(ctx, "slow enrichment", "locator", m.Locator, "elapsed", elapsed)
		}
	}()

	parsed := ParseLocator(m.Locator)
	if !parsed.Valid {
		slog.DebugContext(ctx, "unparseable locator, returning minimal enrichment",
			"locator", m.Locator,
			"reason", parsed.Reason,
		)

		return EnrichedMatch{
			Match:      m,
			Repository: parsed.Repository,
			Artifact:   m.Locator,
		}
	}

	enriched := EnrichedMatch{
		Match:      m,
		Repository: parsed.Repository,
		Artifact:   parsed.Artifact,
		Links:      DeriveLinks(parsed.Repository),
		Known:      true,
	}

	aux, err := s.prober.Head(ctx, m.Locator)
	if err != nil {
		// Absence of auxiliary metadata is a valid outcome; the caller must
		// treat it as "unknown", never as an error.
		slog.DebugContext(ctx, "metadata probe failed, continuing without it",
			"locator", m.Locator,
			"error", err,
		)

		return enriched
	}

	enriched.Aux = &aux

	return enriched
}

// enrichAll enriches all matches concurrently, preserving input order and
// cardinality. Each match writes its own indexed slot, so a failed probe for
// one match never affects any other match's result.
func (s *Service) enrichAll(ctx context.Context, matches []Match) []EnrichedMatch {
	enriched := make([]EnrichedMatch, len(matches))

	g, ctx := errgroup.WithContext(ctx)

	for i, m := range matches {
		g.Go(func() error {
			enriched[i] = s.enrichOne(ctx, m)

			return nil
		})
	}

	// enrichOne never returns an error, so the join cannot fail.
	_ = g.Wait()

	return enriched
}

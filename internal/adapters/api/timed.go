package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"octofit/internal/adapters/http/perf"
	"octofit/internal/domain/collection"
)

// DefaultSlowFetch is the default threshold for slow fetch warnings.
const DefaultSlowFetch = 500 * time.Millisecond

// TimedFetcher wraps a Fetcher to log slow fetches and record them to a collector.
type TimedFetcher struct {
	next      Fetcher
	collector *perf.Collector
	threshold time.Duration
}

// Compile-time check that *TimedFetcher satisfies Fetcher.
var _ Fetcher = (*TimedFetcher)(nil)

// NewTimedFetcher wraps next with timing instrumentation.
// PRE: next is non-nil; collector may be nil
// POST: Returns a fetcher that logs fetches at or above threshold as warnings
func NewTimedFetcher(next Fetcher, collector *perf.Collector, threshold time.Duration) *TimedFetcher {
	if threshold <= 0 {
		threshold = DefaultSlowFetch
	}
	return &TimedFetcher{next: next, collector: collector, threshold: threshold}
}

// FetchCollection delegates to the wrapped fetcher and records its timing.
// PRE: ctx is valid
// POST: result of the wrapped fetcher returned unchanged
func (t *TimedFetcher) FetchCollection(ctx context.Context, endpoint string) ([]collection.Record, error) {
	start := time.Now()
	records, err := t.next.FetchCollection(ctx, endpoint)
	t.logFetch(endpoint, start, len(records), err)
	return records, err
}

func (t *TimedFetcher) logFetch(endpoint string, start time.Time, n int, err error) {
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000.0

	status := 200
	var se *StatusError
	switch {
	case errors.As(err, &se):
		status = se.StatusCode
	case err != nil:
		status = 0
	}

	switch {
	case err != nil:
		slog.Warn("fetch_failed", "endpoint", endpoint, "status", status, "duration_ms", durationMs, "error", err)
	case elapsed >= t.threshold:
		slog.Warn("slow_fetch", "endpoint", endpoint, "records", n, "duration_ms", durationMs)
	default:
		slog.Debug("fetch", "endpoint", endpoint, "records", n, "duration_ms", durationMs)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindFetch,
			Path:       endpoint,
			StatusCode: status,
			Failed:     err != nil,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

package views

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"octofit/internal/domain/collection"
)

// Defaults for a zero Options.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultTTL          = 10 * time.Minute
	DefaultMaxViews     = 1000
)

// ErrNotFound is returned for an unknown or expired view ID.
var ErrNotFound = errors.New("view not found")

// Fetcher retrieves one collection. Satisfied by api.Client and api.TimedFetcher.
type Fetcher interface {
	FetchCollection(ctx context.Context, endpoint string) ([]collection.Record, error)
}

// Options tune a Registry.
type Options struct {
	FetchTimeout time.Duration
	TTL          time.Duration // idle time before a view is torn down
	MaxViews     int           // oldest views are evicted beyond this
}

// Entry is one live view activation.
type Entry struct {
	ID      string
	View    *collection.View
	Created time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Wait blocks until the view has left the loading state or ctx ends.
// PRE: none
// POST: returns ctx.Err() if ctx ended first, nil otherwise
func (e *Entry) Wait(ctx context.Context) error {
	select {
	case <-e.View.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *Entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// Registry holds the live views of the browser front end, keyed by ID.
type Registry struct {
	fetcher Fetcher
	opts    Options
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*Entry
	order   []string // insertion order for eviction
}

// NewRegistry creates an empty registry.
// PRE: fetcher is non-nil
// POST: zero options are replaced by the package defaults
func NewRegistry(fetcher Fetcher, opts Options) *Registry {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxViews <= 0 {
		opts.MaxViews = DefaultMaxViews
	}
	return &Registry{
		fetcher: fetcher,
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]*Entry),
	}
}

// Open activates a new view for schema and starts its single fetch.
// The fetch outlives ctx's cancellation but not the fetch timeout.
// PRE: schema is valid
// POST: returned entry is registered and loading; exactly one fetch is in flight for it
func (r *Registry) Open(ctx context.Context, schema collection.Schema) *Entry {
	now := r.now()
	e := &Entry{
		ID:       uuid.NewString(),
		View:     collection.NewView(schema),
		Created:  now,
		lastSeen: now,
	}

	r.mu.Lock()
	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	evicted := r.evictLocked()
	r.mu.Unlock()

	for _, old := range evicted {
		old.View.Close()
	}
	slog.Debug("view_opened", "view_id", e.ID, "entity", schema.Entity)

	go r.fetch(context.WithoutCancel(ctx), e)
	return e
}

func (r *Registry) fetch(ctx context.Context, e *Entry) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	schema := e.View.Schema()
	records, err := r.fetcher.FetchCollection(ctx, schema.Endpoint)
	var applied bool
	if err != nil {
		applied = e.View.Fail(err)
	} else {
		applied = e.View.Resolve(records)
	}
	if !applied {
		slog.Debug("fetch_discarded", "view_id", e.ID, "entity", schema.Entity)
		return
	}
	slog.Debug("view_resolved", "view_id", e.ID, "entity", schema.Entity, "records", len(records), "failed", err != nil)
}

// evictLocked drops the oldest entries beyond MaxViews.
// PRE: r.mu held
func (r *Registry) evictLocked() []*Entry {
	var evicted []*Entry
	for len(r.entries) > r.opts.MaxViews && len(r.order) > 0 {
		id := r.order[0]
		r.order = r.order[1:]
		if e, ok := r.entries[id]; ok {
			delete(r.entries, id)
			evicted = append(evicted, e)
		}
	}
	return evicted
}

// Get returns a live view and marks it as recently used.
// PRE: none
// POST: Returns ErrNotFound for unknown or torn-down IDs
func (r *Registry) Get(id string) (*Entry, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	e.touch(r.now())
	return e, nil
}

// Close tears a view down. A fetch still in flight for it is discarded on arrival.
// PRE: none
// POST: id is no longer registered; closing an unknown ID is a no-op
func (r *Registry) Close(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
		r.order = removeID(r.order, id)
	}
	r.mu.Unlock()
	if ok {
		e.View.Close()
		slog.Debug("view_closed", "view_id", id)
	}
}

// Sweep tears down views idle for longer than the TTL.
// PRE: none
// POST: Returns the number of views removed
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.opts.TTL)

	r.mu.Lock()
	var stale []*Entry
	for id, e := range r.entries {
		if e.idleSince().Before(cutoff) {
			delete(r.entries, id)
			r.order = removeID(r.order, id)
			stale = append(stale, e)
		}
	}
	r.mu.Unlock()

	for _, e := range stale {
		e.View.Close()
	}
	return len(stale)
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

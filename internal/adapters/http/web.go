package web

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"octofit/internal/adapters/http/middleware"
	"octofit/internal/adapters/http/perf"
	"octofit/internal/application/views"
	"octofit/internal/domain/collection"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed content/home.md
var homeMarkdown []byte

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Registry    *views.Registry
	Schemas     []collection.Schema
	Collector   *perf.Collector
	APIBaseURL  string // shown on the home page
	CSRFKey     []byte // 32 bytes; random per start when empty outside production
	Production  bool
	RateLimit   int // requests per second per client
	SlowRequest time.Duration
	StopCh      <-chan struct{} // stops background cleanup
}

// Global registry instance (set by NewMux)
var registry *views.Registry

// Global schema list in navigation order (set by NewMux)
var schemas []collection.Schema

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// apiBaseURL is the REST host shown on the home page.
var apiBaseURL string

// DefaultRateLimit is the per-client limit when Deps.RateLimit is unset.
const DefaultRateLimit = 10

// ErrCSRFKeyRequired is returned when production runs without a configured key.
var ErrCSRFKeyRequired = errors.New("csrf key is required in production")

// csrfKey returns the configured key or a random one for development.
func csrfKey(d Deps) ([]byte, error) {
	if len(d.CSRFKey) > 0 {
		if len(d.CSRFKey) != 32 {
			return nil, errors.New("csrf key must be 32 bytes")
		}
		return d.CSRFKey, nil
	}
	if d.Production {
		return nil, ErrCSRFKeyRequired
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	slog.Warn("csrf_key_random", "hint", "set OCTOFIT_CSRF_KEY (64 hex chars) so tokens survive restarts")
	return key, nil
}

// DecodeCSRFKey parses a hex-encoded 32-byte key.
func DecodeCSRFKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, errors.New("csrf key must be 64 hex characters (32 bytes)")
	}
	return key, nil
}

// NewMux wires HTTP handlers for the dashboard.
// PRE: d.Registry is non-nil; d.Schemas validated
// POST: Returns the full middleware-wrapped handler
func NewMux(d Deps) (http.Handler, error) {
	registry = d.Registry
	schemas = d.Schemas
	perfCollector = d.Collector
	apiBaseURL = d.APIBaseURL

	key, err := csrfKey(d)
	if err != nil {
		return nil, err
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	registerRoutes(mux)

	rate := d.RateLimit
	if rate <= 0 {
		rate = DefaultRateLimit
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)
	if d.StopCh != nil {
		limiter.StartCleanup(d.StopCh)
	}

	// Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(key, d.Production),
		middleware.RateLimit(limiter),
		middleware.Timing(d.Collector, d.SlowRequest),
	), nil
}

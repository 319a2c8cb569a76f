package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"octofit/internal/adapters/http/perf"
	"octofit/internal/application/listutil"
	"octofit/internal/application/views"
	"octofit/internal/domain/collection"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// fragmentHeader marks script requests that want a table fragment instead of a page.
const fragmentHeader = "X-Requested-With"

// waitLimit bounds how long a page or fragment request waits for a pending fetch.
var waitLimit = 30 * time.Second

// internalError logs err and answers with a generic 500.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func isFragmentRequest(r *http.Request) bool {
	return r.Header.Get(fragmentHeader) != ""
}

// icons maps cell icon names to glyphs.
var icons = map[string]string{
	collection.IconTrophy:   "🏆",
	collection.IconStar:     "★",
	collection.IconPerson:   "👤",
	collection.IconEnvelope: "✉",
	collection.IconShield:   "🛡",
	collection.IconCalendar: "📅",
}

func templateFuncs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
		"csrfToken": func() string { return csrf.Token(r) },
		"navItems":  func() []collection.Schema { return schemas },
		"isCurrent": func(path string) bool { return r.URL.Path == path },
		"icon":      func(name string) string { return icons[name] },
		"renderMarkdown": func(md []byte) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert(md, &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(string(md)))
			}
			return template.HTML(buf.String())
		},
	}
}

// renderTemplate renders page inside the layout.
func renderTemplate(w http.ResponseWriter, r *http.Request, page string, data any) {
	tpl, err := template.New("layout.html").Funcs(templateFuncs(r)).ParseFS(templateFS,
		"templates/layout.html", "templates/table.html", "templates/"+page)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// renderFragment renders only the table partial.
func renderFragment(w http.ResponseWriter, r *http.Request, status int, data viewPage) {
	tpl, err := template.New("table.html").Funcs(templateFuncs(r)).ParseFS(templateFS, "templates/table.html")
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "table", data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// viewPage is the template data for a collection view.
type viewPage struct {
	ID       string
	Schema   collection.Schema
	State    collection.State
	Message  string
	Total    int
	Table    collection.Table
	Bookmark string // route that re-creates this view with its sort
}

// Loading reports whether the view is still waiting for its fetch.
func (p viewPage) Loading() bool { return p.State == collection.StateLoading }

// Failed reports whether the fetch failed.
func (p viewPage) Failed() bool { return p.State == collection.StateError }

func newViewPage(e *views.Entry) viewPage {
	snap := e.View.Snapshot()
	bookmark := "/" + snap.Schema.Entity
	if q := listutil.SortQuery(snap.Sort); q != "" {
		bookmark += "?" + q
	}
	return viewPage{
		ID:       e.ID,
		Schema:   snap.Schema,
		State:    snap.State,
		Message:  snap.Message,
		Total:    snap.Total,
		Table:    snap.Table(),
		Bookmark: bookmark,
	}
}

// expiredPage is rendered when a view ID is unknown.
func expiredPage() viewPage {
	return viewPage{
		State:   collection.StateError,
		Message: "this view has expired, reload the page",
	}
}

// homePage is the template data for the landing page.
type homePage struct {
	Intro      []byte
	Views      []collection.Schema
	APIBaseURL string
}

// handleHome handles GET /: intro and one card per view.
func handleHome(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "home.html", homePage{
		Intro:      homeMarkdown,
		Views:      schemas,
		APIBaseURL: apiBaseURL,
	})
}

// handleOpenView handles GET /<entity>: activates a fresh view and renders its shell.
// Every visit is a new activation with its own fetch.
func handleOpenView(schema collection.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := registry.Open(r.Context(), schema)
		if p := listutil.ParseSortParams(r.URL.Query(), schema.ColumnNames()); p.Present() {
			entry.View.SetSort(p.State())
		}
		slog.Info("view_activated", "entity", schema.Entity, "view_id", entry.ID)
		w.Header().Set("Cache-Control", "no-store")
		renderTemplate(w, r, "view.html", newViewPage(entry))
	}
}

// lookupEntry resolves the {id} path value.
func lookupEntry(w http.ResponseWriter, r *http.Request) (*views.Entry, bool) {
	entry, err := registry.Get(r.PathValue("id"))
	if errors.Is(err, views.ErrNotFound) {
		if isFragmentRequest(r) {
			renderFragment(w, r, http.StatusNotFound, expiredPage())
		} else {
			http.NotFound(w, r)
		}
		return nil, false
	}
	if err != nil {
		internalError(w, err)
		return nil, false
	}
	return entry, true
}

// waitResolved waits for the pending fetch, bounded by waitLimit.
// A timeout still renders; the page shows the loading state.
func waitResolved(ctx context.Context, e *views.Entry) {
	ctx, cancel := context.WithTimeout(ctx, waitLimit)
	defer cancel()
	e.Wait(ctx)
}

// handleViewPage handles GET /views/{id}: full page once the fetch has resolved.
func handleViewPage(w http.ResponseWriter, r *http.Request) {
	entry, ok := lookupEntry(w, r)
	if !ok {
		return
	}
	waitResolved(r.Context(), entry)
	w.Header().Set("Cache-Control", "no-store")
	renderTemplate(w, r, "view.html", newViewPage(entry))
}

// handleViewTable handles GET /views/{id}/table: the table fragment for the page script.
func handleViewTable(w http.ResponseWriter, r *http.Request) {
	entry, ok := lookupEntry(w, r)
	if !ok {
		return
	}
	waitResolved(r.Context(), entry)
	renderFragment(w, r, http.StatusOK, newViewPage(entry))
}

// handleViewSort handles POST /views/{id}/sort: toggles the sort on one column.
// The stored collection is re-sorted in memory; nothing is re-fetched.
func handleViewSort(w http.ResponseWriter, r *http.Request) {
	entry, ok := lookupEntry(w, r)
	if !ok {
		return
	}
	column := r.FormValue("column")
	if err := entry.View.Toggle(column); err != nil {
		switch {
		case errors.Is(err, collection.ErrUnknownColumn):
			http.Error(w, "unknown column", http.StatusBadRequest)
		case errors.Is(err, collection.ErrNotLoaded):
			http.Error(w, "view is not loaded", http.StatusConflict)
		default:
			internalError(w, err)
		}
		return
	}
	slog.Debug("view_sorted", "view_id", entry.ID, "column", column)

	if isFragmentRequest(r) {
		renderFragment(w, r, http.StatusOK, newViewPage(entry))
		return
	}
	http.Redirect(w, r, "/views/"+entry.ID, http.StatusSeeOther)
}

// perfReport is the JSON body of GET /debug/perf.
type perfReport struct {
	Since     time.Time      `json:"since"`
	LiveViews int            `json:"live_views"`
	Perf      *perf.Snapshot `json:"perf,omitempty"`
}

// handlePerf handles GET /debug/perf: request and fetch timings for the last hour.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	since := timeNow().Add(-time.Hour)
	report := perfReport{Since: since, LiveViews: registry.Len()}
	if perfCollector != nil {
		snap := perfCollector.Snapshot(since, 10)
		report.Perf = &snap
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("perf_encode_failed", "error", err.Error())
	}
}

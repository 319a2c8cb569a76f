package web

import "net/http"

// registerRoutes adds the dashboard routes to mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleHome)
	for _, s := range schemas {
		mux.HandleFunc("GET /"+s.Entity, handleOpenView(s))
	}
	mux.HandleFunc("GET /views/{id}", handleViewPage)
	mux.HandleFunc("GET /views/{id}/table", handleViewTable)
	mux.HandleFunc("POST /views/{id}/sort", handleViewSort)
	mux.HandleFunc("GET /debug/perf", handlePerf)
}

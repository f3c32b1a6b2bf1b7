package api

import (
	"database/sql"
	"net/http"
	"strings"
)

// DefaultPrefix is the path of the inventory collection.
const DefaultPrefix = "/api/inventory"

// NormalizePrefix returns prefix with a single leading slash and no
// trailing slash. An empty prefix selects DefaultPrefix.
func NormalizePrefix(prefix string) string {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return DefaultPrefix
	}
	return prefix
}

// NewRouter creates the API router with all endpoints registered under
// prefix.
func NewRouter(db *sql.DB, prefix string) http.Handler {
	prefix = NormalizePrefix(prefix)

	mux := http.NewServeMux()
	items := &ItemsHandler{DB: db, Prefix: prefix}

	mux.HandleFunc("GET /health", Health)

	mux.HandleFunc("GET "+prefix, items.List)
	mux.HandleFunc("GET "+prefix+"/{$}", items.List)
	mux.Handle("POST "+prefix, RequireJSON(http.HandlerFunc(items.Create)))
	mux.Handle("POST "+prefix+"/{$}", RequireJSON(http.HandlerFunc(items.Create)))
	mux.HandleFunc("GET "+prefix+"/{id}", items.Get)
	mux.Handle("PUT "+prefix+"/{id}", RequireJSON(http.HandlerFunc(items.Update)))
	mux.HandleFunc("DELETE "+prefix+"/{id}", items.Delete)

	// Actions take no body.
	mux.HandleFunc("PUT "+prefix+"/{id}/decrement", items.Decrement)
	mux.HandleFunc("PUT "+prefix+"/{id}/archive", items.Archive)

	return mux
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "OK"})
}

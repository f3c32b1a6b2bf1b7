package web

import (
	"net/http"

	webembed "github.com/CSCI-GA-2820-SU24-001/inventory/web"
)

// NewRouter creates the console router. Every page gets its own
// session-scoped bridge from sessions.
func NewRouter(sessions *Sessions) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Templates: templates,
		Sessions:  sessions,
	}

	mux := http.NewServeMux()
	withSession := SessionMiddleware(s.Sessions)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.Handle("GET /{$}", withSession(http.HandlerFunc(s.Console)))
	mux.Handle("POST /console", withSession(http.HandlerFunc(s.ConsoleSubmit)))

	return mux, nil
}

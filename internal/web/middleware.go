package web

import (
	"context"
	"net/http"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/bridge"
)

type webContextKey string

const webBridgeKey webContextKey = "bridge"

// SessionMiddleware attaches the caller's bridge to the request context,
// starting a session when the cookie is missing or expired.
func SessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var b *bridge.Bridge
			if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				b, _ = sessions.Lookup(cookie.Value)
			}
			if b == nil {
				var id string
				id, b = sessions.Start()
				setSessionCookie(w, id)
			}

			ctx := context.WithValue(r.Context(), webBridgeKey, b)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetBridge retrieves the session bridge from the request context.
func GetBridge(ctx context.Context) *bridge.Bridge {
	b, _ := ctx.Value(webBridgeKey).(*bridge.Bridge)
	return b
}

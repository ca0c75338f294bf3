package delivery

import (
	"net/http"

	"github.com/ekazakov/dictvoice/internal/ports"
)

// KeyAuthMiddleware gates a route group behind the shared API key, presented
// either in the X-API-Key header or the key query parameter.
func KeyAuthMiddleware(guard ports.KeyGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headerKey := r.Header.Get("X-API-Key")
			queryKey := r.URL.Query().Get("key")

			if err := guard.Validate(headerKey, queryKey); err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

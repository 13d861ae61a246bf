package middleware

import "net/http"

// GETOnly rejects every non-GET request with a plain 405 before any routing
// or page work happens. The whole surface is read-only.
func GETOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write([]byte("Method Not Allowed"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Package middleware contains the chi middleware shared by every route.
package middleware

import (
	"net/http"
	"strings"
)

// Security sets OWASP REST response headers. Requests whose path starts with
// one of skipPaths (the interactive docs) are left untouched.
//
// Cross-Origin-Resource-Policy is "cross-origin": the API is meant to be read
// from any origin and a same-origin policy would contradict CORS.
func Security(skipPaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", "frame-ancestors 'none'")
			h.Set("Cross-Origin-Resource-Policy", "cross-origin")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}

// ABOUTME: CORS middleware restricted to a configured origin allow-list
// ABOUTME: Answers preflight requests and echoes allowed origins only

package middleware

import (
	"net/http"
	"slices"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// CORS returns middleware that grants cross-origin access to allowedOrigins.
// A single "*" entry allows any origin. Requests without an Origin header
// are same-origin and pass through untouched. Preflight requests get 204
// without reaching the wrapped handler.
func CORS(allowedOrigins []string) Middleware {
	wildcard := slices.Contains(allowedOrigins, "*")

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && (wildcard || slices.Contains(allowedOrigins, origin))

			if origin != "" {
				w.Header().Add("Vary", "Origin")
			}
			if allowed {
				if wildcard {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			}

			if r.Method == http.MethodOptions {
				if origin != "" && !allowed {
					writeJSONError(w, "Origin not allowed", http.StatusForbidden)
					return
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}

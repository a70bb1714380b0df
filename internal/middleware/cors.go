package middleware

import (
	"net/http"
	"strings"
)

// CORS sets permissive cross-origin headers on every response and answers
// preflight requests. The relay serves browser contact forms from arbitrary
// origins, so the origin is always "*". Allowed methods follow the path:
// the health endpoint is read-only, everything else accepts POST.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods := "POST, OPTIONS"
		if strings.HasPrefix(r.URL.Path, "/api/health") {
			methods = "GET, OPTIONS"
		}

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-form-secret")

		// Preflight requests end here
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

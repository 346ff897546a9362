package middleware

import (
	"net/http"
)

// CORSMiddleware lets the map front end, served from another origin, read
// view state and post events. "*" allows any origin, but only origins listed
// by name may send credentials.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed, listed := originAllowed(origin, allowedOrigins)
			if origin == "" || !allowed {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if listed {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed reports whether origin may make requests, and whether it
// was listed by name rather than matched by "*".
func originAllowed(origin string, allowedOrigins []string) (allowed, listed bool) {
	for _, a := range allowedOrigins {
		switch a {
		case origin:
			return true, true
		case "*":
			allowed = true
		}
	}
	return allowed, false
}

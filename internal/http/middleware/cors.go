package middleware

import (
	"net/http"
	"strings"
)

// CORS returns middleware that sets CORS headers for the configured origins.
// With no origins configured CORS headers are not applied. The special value
// "*" allows any origin without credentials. Preflight requests are answered
// here and never reach next.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := false
	var origins []string
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		switch {
		case o == "*":
			wildcard = true
		case o != "":
			origins = append(origins, o)
		}
	}

	originAllowed := func(origin string) bool {
		for _, o := range origins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestOrigin := r.Header.Get("Origin")
			switch {
			case requestOrigin != "" && originAllowed(requestOrigin):
				w.Header().Set("Access-Control-Allow-Origin", requestOrigin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				setCommonHeaders(w)
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
				setCommonHeaders(w)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, X-Request-ID")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

package middleware

import (
	"net/http"
	"slices"
)

// CORS answers preflight requests and sets the allow headers for permitted origins.
type CORS struct {
	allowedOrigins []string
	allowAll       bool
}

// NewCORS permits the listed origins; "*" permits any.
func NewCORS(allowedOrigins []string) *CORS {
	return &CORS{
		allowedOrigins: allowedOrigins,
		allowAll:       slices.Contains(allowedOrigins, "*"),
	}
}

func (c *CORS) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Add("Vary", "Origin")
		if c.allowAll || slices.Contains(c.allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed string
	}{
		{name: "no origin", allowed: []string{"https://app.example"}, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "allowed origin", allowed: []string{"https://app.example"}, method: http.MethodGet, origin: "https://app.example", wantStatus: http.StatusOK, wantAllowed: "https://app.example"},
		{name: "unknown origin", allowed: []string{"https://app.example"}, method: http.MethodGet, origin: "https://evil.example", wantStatus: http.StatusOK},
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodGet, origin: "https://any.example", wantStatus: http.StatusOK, wantAllowed: "https://any.example"},
		{name: "preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://any.example", preflight: true, wantStatus: http.StatusNoContent, wantAllowed: "https://any.example"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/recipes", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}
			rec := httptest.NewRecorder()
			NewCORS(tt.allowed).Handle(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

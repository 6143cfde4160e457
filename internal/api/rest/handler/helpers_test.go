package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	restctx "github.com/dtroode/tastebite-server/internal/api/rest/context"
)

var contextManager = restctx.NewManager()

func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(contextManager.SetUserIDToContext(r.Context(), userID))
}

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorsOf(t *testing.T, rec *httptest.ResponseRecorder) []any {
	t.Helper()
	body := decodeBody(t, rec)
	errs, ok := body["errors"].([]any)
	require.True(t, ok, "body has no errors array: %s", rec.Body.String())
	return errs
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/tastebite-server/internal/model"
)

const maxBodySize = 1 << 20

var errBadBody = model.NewValidationError("body", "Request body must be a JSON object")

// decodeJSON decodes the body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errBadBody
	}
	return nil
}

// decodeFields decodes a JSON object keeping numbers as json.Number so the
// validators can tell 3 from 3.5.
func decodeFields(w http.ResponseWriter, r *http.Request) (model.Fields, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errBadBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields model.Fields
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, errBadBody
	}
	return fields, nil
}

// pagination reads page and per_page. Unparsable values fall back to defaults.
func pagination(r *http.Request) model.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return model.NewPagination(page, perPage)
}

// pathID parses a UUID route variable. A malformed id cannot name a record.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, model.ErrNotFound
	}
	return id, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func callerID(cm model.ContextManager, r *http.Request) (uuid.UUID, error) {
	id, ok := cm.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, model.ErrNotAuthorized
	}
	return id, nil
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tastebite-server/internal/model"
)

func TestPagination(t *testing.T) {
	tests := []struct {
		query string
		want  model.Pagination
	}{
		{query: "", want: model.Pagination{Page: 1, PerPage: 10}},
		{query: "?page=3&per_page=25", want: model.Pagination{Page: 3, PerPage: 25}},
		{query: "?page=-1", want: model.Pagination{Page: 1, PerPage: 10}},
		{query: "?per_page=150", want: model.Pagination{Page: 1, PerPage: 10}},
		{query: "?page=abc&per_page=x", want: model.Pagination{Page: 1, PerPage: 10}},
		{query: "?page=9223372036854775807&per_page=10", want: model.Pagination{Page: model.MaxPage, PerPage: 10}},
		{query: "?page=99999999999999999999", want: model.Pagination{Page: 1, PerPage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/recipes"+tt.query, nil)
			got := pagination(r)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Offset(), 0)
		})
	}
}

func TestDecodeFields(t *testing.T) {
	t.Run("keeps numbers exact", func(t *testing.T) {
		r := newRequest(http.MethodPost, "/", `{"rating": 4.5, "people_served": 3}`)
		fields, err := decodeFields(httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.Equal(t, json.Number("4.5"), fields["rating"])
		assert.Equal(t, json.Number("3"), fields["people_served"])
	})

	for _, body := range []string{"", "[]", "null", "{bad"} {
		t.Run("rejects "+body, func(t *testing.T) {
			_, err := decodeFields(httptest.NewRecorder(), newRequest(http.MethodPost, "/", body))
			var verrs model.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, []string{"Request body must be a JSON object"}, verrs.Messages())
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()
	got, err := pathID(withVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": id.String()}), "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = pathID(withVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"}), "id")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Empty(t, bearerToken(r))

	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(r))

	r.Header.Set("Authorization", "Bearer abc.def")
	assert.Equal(t, "abc.def", bearerToken(r))
}

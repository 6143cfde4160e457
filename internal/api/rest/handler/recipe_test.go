package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/tastebite-server/internal/mocks"
	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/testutil"
)

func testRecipe(owner uuid.UUID) model.Recipe {
	return model.Recipe{
		ID:            uuid.New(),
		OwnerID:       owner,
		OwnerUsername: "alice",
		Title:         "Shakshuka",
		Rating:        4.5,
		Ingredients:   []string{"eggs", "tomatoes"},
		Procedure:     []string{"cook"},
		PeopleServed:  2,
		Category:      model.CategoryBreakfast,
	}
}

func TestRecipe_List(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	p := model.Pagination{Page: 2, PerPage: 10}
	svc := mocks.NewRecipeService(t)
	svc.On("List", mock.Anything, p).
		Return(model.NewPage([]model.Recipe{testRecipe(owner)}, 11, p), nil).Once()

	rec := httptest.NewRecorder()
	NewRecipe(svc, contextManager, testutil.MakeNoopLogger()).
		List(rec, newRequest(http.MethodGet, "/api/recipes?page=2&per_page=150", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 11, body["total"])
	assert.EqualValues(t, 2, body["pages"])
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 10, body["per_page"])
	items := body["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, "alice", first["user"])
	assert.Equal(t, owner.String(), first["user_id"])
	assert.Equal(t, []any{"eggs", "tomatoes"}, first["ingredients"])
}

func TestRecipe_List_Empty(t *testing.T) {
	t.Parallel()

	p := model.NewPagination(5, 10)
	svc := mocks.NewRecipeService(t)
	svc.On("List", mock.Anything, p).Return(model.NewPage[model.Recipe](nil, 3, p), nil).Once()

	rec := httptest.NewRecorder()
	NewRecipe(svc, contextManager, testutil.MakeNoopLogger()).
		List(rec, newRequest(http.MethodGet, "/api/recipes?page=5", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":3,"page":5,"per_page":10,"pages":1}`, rec.Body.String())
}

func TestRecipe_ListMine(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	p := model.NewPagination(1, 10)
	svc := mocks.NewRecipeService(t)
	svc.On("ListByOwner", mock.Anything, owner, p).Return(model.NewPage([]model.Recipe{testRecipe(owner)}, 1, p), nil).Once()
	h := NewRecipe(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.ListMine(rec, asUser(newRequest(http.MethodGet, "/api/my-recipes", ""), owner))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ListMine(rec, newRequest(http.MethodGet, "/api/my-recipes", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecipe_Get(t *testing.T) {
	t.Parallel()

	recipe := testRecipe(uuid.New())
	missing := uuid.New()
	svc := mocks.NewRecipeService(t)
	svc.On("Get", mock.Anything, recipe.ID).Return(recipe, nil).Once()
	svc.On("Get", mock.Anything, missing).Return(model.Recipe{}, model.ErrNotFound).Once()
	h := NewRecipe(svc, contextManager, testutil.MakeNoopLogger())

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "found", id: recipe.ID.String(), wantStatus: http.StatusOK},
		{name: "missing", id: missing.String(), wantStatus: http.StatusNotFound},
		{name: "malformed id", id: "12", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Get(rec, withVars(newRequest(http.MethodGet, "/api/recipes/"+tt.id, ""), map[string]string{"id": tt.id}))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRecipe_Create(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := mocks.NewRecipeService(t)
	svc.On("Create", mock.Anything, owner, mock.MatchedBy(func(f model.Fields) bool {
		return f["title"] == "Shakshuka" && f["rating"] == json.Number("4.5")
	})).Return(testRecipe(owner), nil).Once()
	h := NewRecipe(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Create(rec, asUser(newRequest(http.MethodPost, "/api/recipes", `{"title":"Shakshuka","rating":4.5}`), owner))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Shakshuka", decodeBody(t, rec)["title"])

	rec = httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/api/recipes", `{"title":"Shakshuka"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecipe_Update(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	id := uuid.New()
	svc := mocks.NewRecipeService(t)
	svc.On("Update", mock.Anything, caller, id, model.Fields{"title": "New"}).Return(model.Recipe{}, model.ErrNotAuthorized).Once()
	svc.On("Update", mock.Anything, caller, id, model.Fields{"rating": json.Number("7")}).
		Return(model.Recipe{}, model.NewValidationError("rating", "Rating must be a number between 0 and 5")).Once()
	h := NewRecipe(svc, contextManager, testutil.MakeNoopLogger())

	req := func(body string) *http.Request {
		return asUser(withVars(newRequest(http.MethodPatch, "/api/recipes/"+id.String(), body), map[string]string{"id": id.String()}), caller)
	}

	rec := httptest.NewRecorder()
	h.Update(rec, req(`{"title":"New"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []any{"Not authorized"}, errorsOf(t, rec))

	rec = httptest.NewRecorder()
	h.Update(rec, req(`{"rating":7}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []any{"Rating must be a number between 0 and 5"}, errorsOf(t, rec))

	rec = httptest.NewRecorder()
	h.Update(rec, req(`not json`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRecipe_Delete(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	id := uuid.New()
	svc := mocks.NewRecipeService(t)
	svc.On("Delete", mock.Anything, caller, id).Return(nil).Once()

	rec := httptest.NewRecorder()
	NewRecipe(svc, contextManager, testutil.MakeNoopLogger()).
		Delete(rec, asUser(withVars(newRequest(http.MethodDelete, "/", ""), map[string]string{"id": id.String()}), caller))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package handler

import (
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

func TestUser_List(t *testing.T) {
	t.Parallel()

	admin := uuid.New()
	member := uuid.New()
	p := model.NewPagination(1, 10)
	svc := mocks.NewUserService(t)
	svc.On("ListAll", mock.Anything, admin, p).
		Return(model.NewPage([]model.User{{ID: admin, Username: "root", Role: model.RoleAdmin}}, 1, p), nil).Once()
	svc.On("ListAll", mock.Anything, member, p).Return(model.Page[model.User]{}, model.ErrForbidden).Once()
	h := NewUser(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.List(rec, asUser(newRequest(http.MethodGet, "/api/users", ""), admin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["total"])

	rec = httptest.NewRecorder()
	h.List(rec, asUser(newRequest(http.MethodGet, "/api/users", ""), member))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []any{"Admin privileges required"}, errorsOf(t, rec))
}

func TestUser_Me(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewUserService(t)
	svc.On("GetSelf", mock.Anything, id).Return(model.User{ID: id, Username: "alice", Email: "a@example.com"}, nil).Once()

	rec := httptest.NewRecorder()
	NewUser(svc, contextManager, testutil.MakeNoopLogger()).Me(rec, asUser(newRequest(http.MethodGet, "/api/me", ""), id))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, id.String(), body["id"])
}

func TestUser_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	target := uuid.New()
	vars := map[string]string{"id": target.String()}
	svc := mocks.NewUserService(t)
	svc.On("Update", mock.Anything, caller, target, model.Fields{"username": "bob"}).Return(model.User{ID: target, Username: "bob"}, nil).Once()
	svc.On("Update", mock.Anything, caller, target, model.Fields{"email": "bad"}).
		Return(model.User{}, model.NewValidationError("email", "Invalid email format")).Once()
	svc.On("Delete", mock.Anything, caller, target).Return(model.ErrNotAuthorized).Once()
	h := NewUser(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Update(rec, asUser(withVars(newRequest(http.MethodPatch, "/", `{"username":"bob"}`), vars), caller))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", decodeBody(t, rec)["username"])

	rec = httptest.NewRecorder()
	h.Update(rec, asUser(withVars(newRequest(http.MethodPatch, "/", `{"email":"bad"}`), vars), caller))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, []any{"Invalid email format"}, errorsOf(t, rec))

	rec = httptest.NewRecorder()
	h.Delete(rec, asUser(withVars(newRequest(http.MethodDelete, "/", ""), vars), caller))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

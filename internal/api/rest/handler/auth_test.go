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

func testSession() model.Session {
	return model.Session{
		User: model.User{
			ID:           uuid.New(),
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "secret-hash",
			Role:         model.RoleUser,
		},
		AccessToken:  "access",
		RefreshToken: "refresh",
	}
}

func TestAuth_SignUp(t *testing.T) {
	t.Parallel()

	session := testSession()
	svc := mocks.NewAuthService(t)
	svc.On("SignUp", mock.Anything, model.SignUpParams{
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "pw",
		PasswordConfirmation: "pw",
		ImageURL:             "https://example.com/a.png",
	}).Return(session, nil).Once()

	h := NewAuth(svc, testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()
	h.SignUp(rec, newRequest(http.MethodPost, "/api/signup",
		`{"username":"alice","email":"alice@example.com","password":"pw","password_confirmation":"pw","image_url":"https://example.com/a.png"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "access", body["access_token"])
	assert.Equal(t, "refresh", body["refresh_token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

func TestAuth_SignUp_Errors(t *testing.T) {
	t.Parallel()

	t.Run("validation", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("SignUp", mock.Anything, mock.Anything).
			Return(model.Session{}, model.NewValidationError("username", "Username already exists")).Once()

		rec := httptest.NewRecorder()
		NewAuth(svc, testutil.MakeNoopLogger()).SignUp(rec, newRequest(http.MethodPost, "/api/signup", `{"username":"alice"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []any{"Username already exists"}, errorsOf(t, rec))
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewAuth(mocks.NewAuthService(t), testutil.MakeNoopLogger()).SignUp(rec, newRequest(http.MethodPost, "/api/signup", `{"username":`))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantError  string
	}{
		{name: "success", wantStatus: http.StatusCreated},
		{name: "bad credentials", svcErr: model.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantError: "Invalid username or password"},
		{name: "missing fields", svcErr: model.NewValidationError("username", "Username and password are required"), wantStatus: http.StatusUnprocessableEntity, wantError: "Username and password are required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			session := testSession()
			if tt.svcErr != nil {
				session = model.Session{}
			}
			svc.On("Login", mock.Anything, "alice", "pw").Return(session, tt.svcErr).Once()

			rec := httptest.NewRecorder()
			NewAuth(svc, testutil.MakeNoopLogger()).Login(rec, newRequest(http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, []any{tt.wantError}, errorsOf(t, rec))
			}
		})
	}
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	pair := model.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	t.Run("bearer header", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "old-refresh").Return(pair, nil).Once()

		req := newRequest(http.MethodPost, "/api/refresh", "")
		req.Header.Set("Authorization", "Bearer old-refresh")
		rec := httptest.NewRecorder()
		NewAuth(svc, testutil.MakeNoopLogger()).Refresh(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"new-access","refresh_token":"new-refresh"}`, rec.Body.String())
	})

	t.Run("json body", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "body-refresh").Return(pair, nil).Once()

		rec := httptest.NewRecorder()
		NewAuth(svc, testutil.MakeNoopLogger()).Refresh(rec, newRequest(http.MethodPost, "/api/refresh", `{"refresh_token":"body-refresh"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejected", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "").Return(model.TokenPair{}, model.ErrInvalidToken).Once()

		rec := httptest.NewRecorder()
		NewAuth(svc, testutil.MakeNoopLogger()).Refresh(rec, newRequest(http.MethodPost, "/api/refresh", ""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, []any{"Invalid or expired token"}, errorsOf(t, rec))
	})
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("Logout", mock.Anything, "refresh").Return(nil).Once()
	svc.On("Logout", mock.Anything, "revoked").Return(model.ErrTokenRevoked).Once()
	h := NewAuth(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodPost, "/api/logout", `{"refresh_token":"refresh"}`))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodPost, "/api/logout", `{"refresh_token":"revoked"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

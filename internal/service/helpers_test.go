package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/password"
	"github.com/dtroode/tastebite-server/internal/testutil"
	"github.com/dtroode/tastebite-server/internal/token"
)

type fixture struct {
	store  *testutil.MemStore
	jwt    *token.JWT
	tokens *TokenService
	auth   *Auth
	hasher *password.Bcrypt
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewMemStore()
	jwt := token.NewJWT("secret", "tastebite", 15*time.Minute, 30*24*time.Hour)
	hasher := password.NewBcrypt(bcrypt.MinCost)
	log := testutil.MakeNoopLogger()
	tokens := NewTokenService(jwt, store, 30*24*time.Hour, log)
	auth, err := NewAuth(store, hasher, tokens, log)
	require.NoError(t, err)
	return &fixture{store: store, jwt: jwt, tokens: tokens, auth: auth, hasher: hasher}
}

func (f *fixture) signUp(t *testing.T, username string) model.Session {
	t.Helper()
	s, err := f.auth.SignUp(context.Background(), model.SignUpParams{
		Username:             username,
		Email:                username + "@example.com",
		Password:             "password",
		PasswordConfirmation: "password",
		ImageURL:             "https://example.com/" + username + ".png",
	})
	require.NoError(t, err)
	return s
}

// promote makes the user an admin directly in the store.
func (f *fixture) promote(t *testing.T, u model.User) model.User {
	t.Helper()
	u.Role = model.RoleAdmin
	saved, err := f.store.Users().Update(context.Background(), u)
	require.NoError(t, err)
	return saved
}

func recipeFields() model.Fields {
	return model.Fields{
		"title":         "Shakshuka",
		"country":       "Tunisia",
		"rating":        json.Number("4.8"),
		"ingredients":   "eggs\ntomatoes\n\npeppers",
		"procedure":     []any{"simmer sauce", "poach eggs"},
		"people_served": json.Number("2"),
		"category":      "Breakfast",
		"cooking_time":  "30 minutes",
		"image_url":     "https://example.com/s.png",
		"video_link":    "https://example.com/s.mp4",
	}
}

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var verrs model.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.Messages()
}

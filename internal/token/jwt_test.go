package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tastebite-server/internal/model"
)

func newTestJWT() *JWT {
	return NewJWT("secret", "tastebite", 15*time.Minute, 30*24*time.Hour)
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	refresh, jti, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	gotUser, gotJTI, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, u, gotUser)
	require.Equal(t, jti, gotJTI)
}

func TestJWT_ScopeMismatch(t *testing.T) {
	j := newTestJWT()
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	_, _, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	refresh, _, err := j.GenerateRefreshToken(u)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := newTestJWT()
	issued := time.Now().Add(-time.Hour)
	j.now = func() time.Time { return issued }

	access, err := j.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSecretOrIssuer(t *testing.T) {
	u := uuid.New()
	access, err := newTestJWT().GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = NewJWT("other", "tastebite", time.Minute, time.Hour).ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	_, err = NewJWT("secret", "someone-else", time.Minute, time.Hour).ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	_, err := newTestJWT().ParseAccessToken("not.a.token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "tastebite",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Scope: scopeAccess,
	})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWT().ParseAccessToken(s)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

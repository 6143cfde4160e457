package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

const (
	scopeAccess  = "access"
	scopeRefresh = "refresh"
)

var _ model.TokenManager = (*JWT)(nil)

// Claims carries the token scope next to the registered claims. The subject
// is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// JWT implements TokenManager with HS256 signatures.
type JWT struct {
	secretKey  []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWT creates a token manager.
func NewJWT(secretKey, issuer string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (j *JWT) GenerateAccessToken(userID uuid.UUID) (string, error) {
	token, err := j.sign(userID, scopeAccess, j.accessTTL, "")
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// GenerateRefreshToken creates a refresh token and returns its JTI.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	jti := uuid.NewString()
	token, err := j.sign(userID, scopeRefresh, j.refreshTTL, jti)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, jti, nil
}

func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, scopeAccess)
	if err != nil {
		return uuid.Nil, fmt.Errorf("access token: %w", err)
	}
	return claims.userID, nil
}

func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := j.parse(tokenString, scopeRefresh)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("refresh token: %w", err)
	}
	if claims.ID == "" {
		return uuid.Nil, "", fmt.Errorf("refresh token: %w", model.ErrInvalidToken)
	}
	return claims.userID, claims.ID, nil
}

func (j *JWT) sign(userID uuid.UUID, scope string, ttl time.Duration, jti string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    j.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: scope,
	})
	return token.SignedString(j.secretKey)
}

type parsedClaims struct {
	*Claims
	userID uuid.UUID
}

// parse verifies signature, expiry, issuer and scope. All failures wrap
// model.ErrInvalidToken.
func (j *JWT) parse(tokenString, scope string) (parsedClaims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		return parsedClaims{}, errors.Join(model.ErrInvalidToken, err)
	}
	if claims.Scope != scope {
		return parsedClaims{}, fmt.Errorf("%w: scope mismatch: %s", model.ErrInvalidToken, claims.Scope)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return parsedClaims{}, fmt.Errorf("%w: bad subject", model.ErrInvalidToken)
	}
	return parsedClaims{Claims: claims, userID: userID}, nil
}

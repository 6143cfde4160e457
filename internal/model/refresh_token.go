package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists issued refresh tokens so rotated or revoked
// tokens can be rejected.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the stored record of one issued refresh token.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
}

package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

// TokenService issues, rotates and revokes token pairs. Refresh tokens are
// persisted by hash so a rotated or revoked token cannot be replayed.
type TokenService struct {
	manager    model.TokenManager
	stores     model.Transactor
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

func NewTokenService(manager model.TokenManager, stores model.Transactor, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		stores:     stores,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue creates a token pair for userID and records the refresh token in store.
func (s *TokenService) Issue(ctx context.Context, store model.RefreshTokenStore, userID uuid.UUID) (model.TokenPair, error) {
	return s.issue(ctx, store, userID, nil)
}

func (s *TokenService) issue(ctx context.Context, store model.RefreshTokenStore, userID uuid.UUID, rotatedFrom *string) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFrom,
	}
	if err := store.Create(ctx, rt); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh revokes the presented refresh token and issues a new pair in one
// unit of work.
func (s *TokenService) Refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presented)
	if err != nil {
		s.logger.Debug("Token service: refresh token rejected", "error", err.Error())
		return model.TokenPair{}, model.ErrInvalidToken
	}

	pair, err := withinTx(ctx, s.stores, s.logger, "Token service: refresh", func(uow model.UnitOfWork) (model.TokenPair, error) {
		store := uow.RefreshTokens()
		if err := s.verify(ctx, store, jti, presented); err != nil {
			return model.TokenPair{}, err
		}
		if err := store.RevokeByJTI(ctx, jti); err != nil {
			return model.TokenPair{}, fmt.Errorf("revoke old refresh: %w", err)
		}
		return s.issue(ctx, store, userID, &jti)
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	s.logger.Info("Token service: refresh token rotated", "user_id", userID.String())
	return pair, nil
}

// RevokeByToken revokes the presented refresh token.
func (s *TokenService) RevokeByToken(ctx context.Context, presented string) error {
	_, jti, err := s.manager.ParseRefreshToken(presented)
	if err != nil {
		return model.ErrInvalidToken
	}

	store := s.stores.RefreshTokens()
	if err := s.verify(ctx, store, jti, presented); err != nil {
		if model.IsClientError(err) {
			return err
		}
		s.logger.Error("Token service: failed to load refresh token", "error", err.Error())
		return model.ErrOperationFailed
	}
	if err := store.RevokeByJTI(ctx, jti); err != nil {
		s.logger.Error("Token service: failed to revoke refresh token", "error", err.Error())
		return model.ErrOperationFailed
	}
	return nil
}

// GetUserID resolves the caller from an access token.
func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, model.ErrInvalidToken
	}
	return userID, nil
}

func (s *TokenService) verify(ctx context.Context, store model.RefreshTokenStore, jti, presented string) error {
	rt, err := store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("load refresh: %w", err)
	}
	return validateRecord(rt, hashRefresh(presented), s.now())
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}

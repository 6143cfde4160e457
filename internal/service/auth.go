package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/validation"
)

// dummyPassword is hashed once so unknown-user logins pay for a bcrypt compare too.
const dummyPassword = "tastebite-timing-equalizer"

// Auth handles registration, login and token lifecycle.
type Auth struct {
	stores    model.Transactor
	hasher    model.PasswordHasher
	tokens    *TokenService
	logger    *logger.Logger
	dummyHash string
}

func NewAuth(stores model.Transactor, hasher model.PasswordHasher, tokens *TokenService, logger *logger.Logger) (*Auth, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Auth{
		stores:    stores,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// SignUp registers a user and returns a fresh session. The user row and its
// refresh token are written in one unit of work.
func (a *Auth) SignUp(ctx context.Context, params model.SignUpParams) (model.Session, error) {
	a.logger.Debug("Auth service: starting user registration", "username", params.Username)

	if err := requireFields(
		"username", params.Username,
		"email", params.Email,
		"password", params.Password,
		"password_confirmation", params.PasswordConfirmation,
		"image_url", params.ImageURL,
	); err != nil {
		return model.Session{}, err
	}
	if params.Password != params.PasswordConfirmation {
		return model.Session{}, model.NewValidationError("password_confirmation", "Password confirmation doesn't match")
	}

	fields, err := validation.SignUp.ValidateAll(model.Fields{
		"username":  params.Username,
		"email":     params.Email,
		"password":  params.Password,
		"image_url": params.ImageURL,
	}, false)
	if err != nil {
		return model.Session{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password", "error", err.Error())
		return model.Session{}, model.ErrOperationFailed
	}

	session, err := withinTx(ctx, a.stores, a.logger, "Auth service: signup", func(uow model.UnitOfWork) (model.Session, error) {
		users := uow.Users()
		if err := checkUnique(ctx, users, fields, uuid.Nil); err != nil {
			return model.Session{}, err
		}

		user, err := users.Create(ctx, model.User{
			Username:     fields["username"].(string),
			Email:        fields["email"].(string),
			PasswordHash: hash,
			ImageURL:     fields["image_url"].(string),
			Role:         model.RoleUser,
		})
		if err != nil {
			return model.Session{}, fmt.Errorf("create user: %w", err)
		}

		pair, err := a.tokens.Issue(ctx, uow.RefreshTokens(), user.ID)
		if err != nil {
			return model.Session{}, err
		}
		return model.Session{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
	})
	if err != nil {
		a.logger.Info("Auth service: registration rejected", "username", params.Username, "error", err.Error())
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registered", "user_id", session.User.ID.String())
	return session, nil
}

// Login verifies credentials. Unknown users and wrong passwords produce the
// same error after the same amount of hashing work.
func (a *Auth) Login(ctx context.Context, username, password string) (model.Session, error) {
	a.logger.Debug("Auth service: starting user login", "username", username)

	if strings.TrimSpace(username) == "" || password == "" {
		return model.Session{}, model.NewValidationError("username", "Username and password are required")
	}

	user, err := a.stores.Users().GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		_ = a.hasher.Compare(a.dummyHash, password)
		a.logger.Info("Auth service: login failed", "username", username)
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username", "error", err.Error())
		return model.Session{}, model.ErrOperationFailed
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		a.logger.Info("Auth service: login failed", "username", username)
		return model.Session{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokens.Issue(ctx, a.stores.RefreshTokens(), user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens", "user_id", user.ID.String(), "error", err.Error())
		return model.Session{}, model.ErrOperationFailed
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID.String())
	return model.Session{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh rotates a refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return model.TokenPair{}, model.ErrInvalidToken
	}
	return a.tokens.Refresh(ctx, refreshToken)
}

// Logout revokes a refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return model.ErrInvalidToken
	}
	return a.tokens.RevokeByToken(ctx, refreshToken)
}

// requireFields takes name/value pairs and reports every blank value.
func requireFields(pairs ...string) error {
	var verrs model.ValidationErrors
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			verrs = append(verrs, model.ValidationError{
				Field:   pairs[i],
				Message: pairs[i] + " is required",
			})
		}
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// checkUnique rejects a username or email held by a user other than selfID.
func checkUnique(ctx context.Context, users model.UserStore, fields model.Fields, selfID uuid.UUID) error {
	if username, ok := fields["username"].(string); ok {
		taken, err := users.ExistsByUsername(ctx, username, selfID)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return model.ErrUsernameTaken
		}
	}
	if email, ok := fields["email"].(string); ok {
		taken, err := users.ExistsByEmail(ctx, email, selfID)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return model.ErrEmailTaken
		}
	}
	return nil
}

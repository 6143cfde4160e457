// Package handler implements the REST endpoints on top of the services.
package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

// AuthService defines registration, login and token lifecycle operations.
type AuthService interface {
	SignUp(ctx context.Context, params model.SignUpParams) (model.Session, error)
	Login(ctx context.Context, username, password string) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// RecipeService defines public recipe operations.
type RecipeService interface {
	List(ctx context.Context, p model.Pagination) (model.Page[model.Recipe], error)
	ListByOwner(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.Recipe], error)
	Get(ctx context.Context, id uuid.UUID) (model.Recipe, error)
	Create(ctx context.Context, callerID uuid.UUID, fields model.Fields) (model.Recipe, error)
	Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.Recipe, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

// FavoriteRecipeService defines caller-scoped favorite operations.
type FavoriteRecipeService interface {
	List(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.FavoriteRecipe], error)
	Get(ctx context.Context, callerID, id uuid.UUID) (model.FavoriteRecipe, error)
	Create(ctx context.Context, callerID uuid.UUID, fields model.Fields) (model.FavoriteRecipe, error)
	Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.FavoriteRecipe, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

// UserService defines account operations.
type UserService interface {
	ListAll(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.User], error)
	GetSelf(ctx context.Context, callerID uuid.UUID) (model.User, error)
	Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.User, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

// ImageService defines image upload and retrieval.
type ImageService interface {
	Upload(ctx context.Context, callerID uuid.UUID, contentType string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, ownerID uuid.UUID, name string) (model.Object, error)
	Delete(ctx context.Context, callerID, ownerID uuid.UUID, name string) error
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

package model

import "context"

// Stores hands out repositories bound to one connection or transaction.
type Stores interface {
	Users() UserStore
	Recipes() RecipeStore
	Favorites() FavoriteRecipeStore
	RefreshTokens() RefreshTokenStore
}

// UnitOfWork is a transaction with transaction-bound repositories.
// Rollback after Commit is a no-op.
type UnitOfWork interface {
	Stores
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Transactor opens units of work. Its own Stores run outside a transaction.
type Transactor interface {
	Stores
	Begin(ctx context.Context) (UnitOfWork, error)
	Ping(ctx context.Context) error
}

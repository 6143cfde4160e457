package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/tastebite-server/internal/model"
)

var _ model.UnitOfWork = (*Tx)(nil)

// Tx is a unit of work over one pgx transaction.
type Tx struct {
	tx        pgx.Tx
	committed bool
}

func (t *Tx) Users() model.UserStore               { return NewUserRepository(t.tx) }
func (t *Tx) Recipes() model.RecipeStore           { return NewRecipeRepository(t.tx) }
func (t *Tx) Favorites() model.FavoriteRecipeStore { return NewFavoriteRecipeRepository(t.tx) }
func (t *Tx) RefreshTokens() model.RefreshTokenStore {
	return NewRefreshTokenRepository(t.tx)
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	t.committed = true
	return nil
}

// Rollback aborts the transaction. It is a no-op once committed.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

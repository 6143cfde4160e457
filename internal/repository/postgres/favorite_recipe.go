package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

var _ model.FavoriteRecipeStore = (*FavoriteRecipeRepository)(nil)

const favoriteColumns = `f.id, f.user_id, u.username, f.title, f.country, f.rating, f.ingredients, f.procedure,
		f.people_served, f.category, f.cooking_time, f.image_url, f.video_link, f.created_at, f.updated_at`

type FavoriteRecipeRepository struct {
	db DBTX
}

func NewFavoriteRecipeRepository(db DBTX) *FavoriteRecipeRepository {
	return &FavoriteRecipeRepository{
		db: db,
	}
}

func scanFavorite(row scanner) (model.FavoriteRecipe, error) {
	var fav model.FavoriteRecipe
	err := row.Scan(
		&fav.ID, &fav.OwnerID, &fav.OwnerUsername, &fav.Title, &fav.Country, &fav.Rating,
		&fav.Ingredients, &fav.Procedure, &fav.PeopleServed, &fav.Category, &fav.CookingTime,
		&fav.ImageURL, &fav.VideoLink, &fav.CreatedAt, &fav.UpdatedAt,
	)
	return fav, err
}

func (r *FavoriteRecipeRepository) Create(ctx context.Context, fav model.FavoriteRecipe) (model.FavoriteRecipe, error) {
	query := `
		WITH f AS (
			INSERT INTO favorite_recipes (id, user_id, title, country, rating, ingredients, procedure,
				people_served, category, cooking_time, image_url, video_link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING *
		)
		SELECT ` + favoriteColumns + ` FROM f JOIN users u ON u.id = f.user_id`

	if fav.ID == uuid.Nil {
		fav.ID = uuid.New()
	}

	saved, err := scanFavorite(r.db.QueryRow(ctx, query,
		fav.ID, fav.OwnerID, fav.Title, fav.Country, fav.Rating, fav.Ingredients, fav.Procedure,
		fav.PeopleServed, string(fav.Category), fav.CookingTime, fav.ImageURL, fav.VideoLink,
	))
	if err != nil {
		return model.FavoriteRecipe{}, fmt.Errorf("failed to create favorite recipe: %w", mapError(err))
	}
	return saved, nil
}

func (r *FavoriteRecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (model.FavoriteRecipe, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorite_recipes f JOIN users u ON u.id = f.user_id WHERE f.id = $1`

	fav, err := scanFavorite(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.FavoriteRecipe{}, fmt.Errorf("failed to get favorite recipe by id: %w", mapError(err))
	}
	return fav, nil
}

func (r *FavoriteRecipeRepository) Update(ctx context.Context, fav model.FavoriteRecipe) (model.FavoriteRecipe, error) {
	query := `
		WITH f AS (
			UPDATE favorite_recipes
			SET title = $2, country = $3, rating = $4, ingredients = $5, procedure = $6,
				people_served = $7, category = $8, cooking_time = $9, image_url = $10, video_link = $11,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + favoriteColumns + ` FROM f JOIN users u ON u.id = f.user_id`

	saved, err := scanFavorite(r.db.QueryRow(ctx, query,
		fav.ID, fav.Title, fav.Country, fav.Rating, fav.Ingredients, fav.Procedure,
		fav.PeopleServed, string(fav.Category), fav.CookingTime, fav.ImageURL, fav.VideoLink,
	))
	if err != nil {
		return model.FavoriteRecipe{}, fmt.Errorf("failed to update favorite recipe: %w", mapError(err))
	}
	return saved, nil
}

func (r *FavoriteRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM favorite_recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *FavoriteRecipeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, p model.Pagination) ([]model.FavoriteRecipe, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorite_recipes WHERE user_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count favorite recipes: %w", err)
	}

	query := `SELECT ` + favoriteColumns + ` FROM favorite_recipes f JOIN users u ON u.id = f.user_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, ownerID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list favorite recipes: %w", err)
	}
	defer rows.Close()

	var favs []model.FavoriteRecipe
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan favorite recipe: %w", err)
		}
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list favorite recipes: %w", err)
	}
	return favs, total, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

var _ model.RecipeStore = (*RecipeRepository)(nil)

// recipeColumns selects a recipe row aliased r joined with its owner u.
const recipeColumns = `r.id, r.user_id, u.username, r.title, r.country, r.rating, r.ingredients, r.procedure,
		r.people_served, r.category, r.cooking_time, r.image_url, r.video_link, r.created_at, r.updated_at`

type RecipeRepository struct {
	db DBTX
}

func NewRecipeRepository(db DBTX) *RecipeRepository {
	return &RecipeRepository{
		db: db,
	}
}

func scanRecipe(row scanner) (model.Recipe, error) {
	var recipe model.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.OwnerID, &recipe.OwnerUsername, &recipe.Title, &recipe.Country, &recipe.Rating,
		&recipe.Ingredients, &recipe.Procedure, &recipe.PeopleServed, &recipe.Category, &recipe.CookingTime,
		&recipe.ImageURL, &recipe.VideoLink, &recipe.CreatedAt, &recipe.UpdatedAt,
	)
	return recipe, err
}

func (r *RecipeRepository) Create(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	query := `
		WITH r AS (
			INSERT INTO recipes (id, user_id, title, country, rating, ingredients, procedure,
				people_served, category, cooking_time, image_url, video_link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING *
		)
		SELECT ` + recipeColumns + ` FROM r JOIN users u ON u.id = r.user_id`

	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}

	saved, err := scanRecipe(r.db.QueryRow(ctx, query,
		recipe.ID, recipe.OwnerID, recipe.Title, recipe.Country, recipe.Rating,
		nonNil(recipe.Ingredients), nonNil(recipe.Procedure), recipe.PeopleServed, string(recipe.Category),
		recipe.CookingTime, recipe.ImageURL, recipe.VideoLink,
	))
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to create recipe: %w", mapError(err))
	}
	return saved, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r JOIN users u ON u.id = r.user_id WHERE r.id = $1`

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to get recipe by id: %w", mapError(err))
	}
	return recipe, nil
}

// Update rewrites every mutable column. Ownership is never changed.
func (r *RecipeRepository) Update(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	query := `
		WITH r AS (
			UPDATE recipes
			SET title = $2, country = $3, rating = $4, ingredients = $5, procedure = $6,
				people_served = $7, category = $8, cooking_time = $9, image_url = $10, video_link = $11,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + recipeColumns + ` FROM r JOIN users u ON u.id = r.user_id`

	saved, err := scanRecipe(r.db.QueryRow(ctx, query,
		recipe.ID, recipe.Title, recipe.Country, recipe.Rating,
		nonNil(recipe.Ingredients), nonNil(recipe.Procedure), recipe.PeopleServed, string(recipe.Category),
		recipe.CookingTime, recipe.ImageURL, recipe.VideoLink,
	))
	if err != nil {
		return model.Recipe{}, fmt.Errorf("failed to update recipe: %w", mapError(err))
	}
	return saved, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) List(ctx context.Context, p model.Pagination) ([]model.Recipe, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes r JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC, r.id
		LIMIT $1 OFFSET $2`

	recipes, err := r.collect(ctx, query, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *RecipeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, p model.Pagination) ([]model.Recipe, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipes WHERE user_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes r JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id
		LIMIT $2 OFFSET $3`

	recipes, err := r.collect(ctx, query, ownerID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *RecipeRepository) collect(ctx context.Context, query string, args ...any) ([]model.Recipe, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

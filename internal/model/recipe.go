package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category enumerates recipe categories.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategorySupper    Category = "Supper"
	CategoryDrinks    Category = "Drinks"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{CategoryBreakfast, CategoryLunch, CategorySupper, CategoryDrinks}

// Fields is a decoded request body used for create and partial update.
// Only keys present are applied.
type Fields map[string]any

// RecipeStore defines persistence operations for recipes.
type RecipeStore interface {
	Create(ctx context.Context, recipe Recipe) (Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (Recipe, error)
	Update(ctx context.Context, recipe Recipe) (Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, p Pagination) ([]Recipe, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p Pagination) ([]Recipe, int, error)
}

// Recipe is a user-authored recipe with structured ingredients and steps.
type Recipe struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	OwnerUsername string
	Title         string
	Country       string
	Rating        float64
	Ingredients   []string
	Procedure     []string
	PeopleServed  int
	Category      Category
	CookingTime   string
	ImageURL      string
	VideoLink     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FavoriteRecipeStore defines persistence operations for favorite recipes.
type FavoriteRecipeStore interface {
	Create(ctx context.Context, recipe FavoriteRecipe) (FavoriteRecipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (FavoriteRecipe, error)
	Update(ctx context.Context, recipe FavoriteRecipe) (FavoriteRecipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p Pagination) ([]FavoriteRecipe, int, error)
}

// FavoriteRecipe is a user's private copy of a recipe. Ingredients and
// procedure are kept as free text.
type FavoriteRecipe struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	OwnerUsername string
	Title         string
	Country       string
	Rating        float64
	Ingredients   string
	Procedure     string
	PeopleServed  int
	Category      Category
	CookingTime   string
	ImageURL      string
	VideoLink     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

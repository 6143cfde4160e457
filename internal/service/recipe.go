package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/validation"
)

// Recipe manages public recipes. Only the owner may change a recipe.
type Recipe struct {
	stores model.Transactor
	logger *logger.Logger
}

func NewRecipe(stores model.Transactor, logger *logger.Logger) *Recipe {
	return &Recipe{stores: stores, logger: logger}
}

func (s *Recipe) List(ctx context.Context, p model.Pagination) (model.Page[model.Recipe], error) {
	items, total, err := s.stores.Recipes().List(ctx, p)
	if err != nil {
		s.logger.Error("Recipe service: failed to list recipes", "error", err.Error())
		return model.Page[model.Recipe]{}, fmt.Errorf("list recipes: %w", err)
	}
	return model.NewPage(items, total, p), nil
}

func (s *Recipe) ListByOwner(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.Recipe], error) {
	items, total, err := s.stores.Recipes().ListByOwner(ctx, callerID, p)
	if err != nil {
		s.logger.Error("Recipe service: failed to list own recipes", "user_id", callerID.String(), "error", err.Error())
		return model.Page[model.Recipe]{}, fmt.Errorf("list own recipes: %w", err)
	}
	return model.NewPage(items, total, p), nil
}

func (s *Recipe) Get(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	recipe, err := s.stores.Recipes().GetByID(ctx, id)
	if err != nil {
		return model.Recipe{}, err
	}
	return recipe, nil
}

func (s *Recipe) Create(ctx context.Context, callerID uuid.UUID, fields model.Fields) (model.Recipe, error) {
	valid, err := validation.Recipe.ValidateAll(fields, false)
	if err != nil {
		return model.Recipe{}, err
	}

	recipe := model.Recipe{OwnerID: callerID}
	applyRecipe(&recipe, valid)

	created, err := withinTx(ctx, s.stores, s.logger, "Recipe service: create", func(uow model.UnitOfWork) (model.Recipe, error) {
		return uow.Recipes().Create(ctx, recipe)
	})
	if err != nil {
		return model.Recipe{}, err
	}

	s.logger.Info("Recipe service: recipe created", "recipe_id", created.ID.String(), "user_id", callerID.String())
	return created, nil
}

// Update applies the supplied fields. A missing recipe is reported before
// ownership, and ownership before validation.
func (s *Recipe) Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.Recipe, error) {
	updated, err := withinTx(ctx, s.stores, s.logger, "Recipe service: update", func(uow model.UnitOfWork) (model.Recipe, error) {
		recipes := uow.Recipes()
		recipe, err := recipes.GetByID(ctx, id)
		if err != nil {
			return model.Recipe{}, err
		}
		if recipe.OwnerID != callerID {
			return model.Recipe{}, model.ErrNotAuthorized
		}

		valid, err := validation.Recipe.ValidateAll(fields, true)
		if err != nil {
			return model.Recipe{}, err
		}
		applyRecipe(&recipe, valid)
		return recipes.Update(ctx, recipe)
	})
	if err != nil {
		return model.Recipe{}, err
	}

	s.logger.Info("Recipe service: recipe updated", "recipe_id", id.String())
	return updated, nil
}

func (s *Recipe) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	_, err := withinTx(ctx, s.stores, s.logger, "Recipe service: delete", func(uow model.UnitOfWork) (struct{}, error) {
		recipes := uow.Recipes()
		recipe, err := recipes.GetByID(ctx, id)
		if err != nil {
			return struct{}{}, err
		}
		if recipe.OwnerID != callerID {
			return struct{}{}, model.ErrNotAuthorized
		}
		return struct{}{}, recipes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Recipe service: recipe deleted", "recipe_id", id.String())
	return nil
}

// applyRecipe copies validated fields onto r.
func applyRecipe(r *model.Recipe, fields model.Fields) {
	for name, v := range fields {
		switch name {
		case "title":
			r.Title = v.(string)
		case "country":
			r.Country = v.(string)
		case "rating":
			r.Rating = v.(float64)
		case "ingredients":
			r.Ingredients = v.([]string)
		case "procedure":
			r.Procedure = v.([]string)
		case "people_served":
			r.PeopleServed = v.(int)
		case "category":
			r.Category = v.(model.Category)
		case "cooking_time":
			r.CookingTime = v.(string)
		case "image_url":
			r.ImageURL = v.(string)
		case "video_link":
			r.VideoLink = v.(string)
		}
	}
}

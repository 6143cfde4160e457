package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/validation"
)

// FavoriteRecipe manages a user's private recipe copies. Every operation is
// scoped to the owner.
type FavoriteRecipe struct {
	stores model.Transactor
	logger *logger.Logger
}

func NewFavoriteRecipe(stores model.Transactor, logger *logger.Logger) *FavoriteRecipe {
	return &FavoriteRecipe{stores: stores, logger: logger}
}

func (s *FavoriteRecipe) List(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.FavoriteRecipe], error) {
	items, total, err := s.stores.Favorites().ListByOwner(ctx, callerID, p)
	if err != nil {
		s.logger.Error("Favorite service: failed to list favorites", "user_id", callerID.String(), "error", err.Error())
		return model.Page[model.FavoriteRecipe]{}, fmt.Errorf("list favorites: %w", err)
	}
	return model.NewPage(items, total, p), nil
}

func (s *FavoriteRecipe) Get(ctx context.Context, callerID, id uuid.UUID) (model.FavoriteRecipe, error) {
	fav, err := s.stores.Favorites().GetByID(ctx, id)
	if err != nil {
		return model.FavoriteRecipe{}, err
	}
	if fav.OwnerID != callerID {
		return model.FavoriteRecipe{}, model.ErrNotAuthorized
	}
	return fav, nil
}

func (s *FavoriteRecipe) Create(ctx context.Context, callerID uuid.UUID, fields model.Fields) (model.FavoriteRecipe, error) {
	valid, err := validation.FavoriteRecipe.ValidateAll(fields, false)
	if err != nil {
		return model.FavoriteRecipe{}, err
	}

	fav := model.FavoriteRecipe{OwnerID: callerID}
	applyFavorite(&fav, valid)

	created, err := withinTx(ctx, s.stores, s.logger, "Favorite service: create", func(uow model.UnitOfWork) (model.FavoriteRecipe, error) {
		return uow.Favorites().Create(ctx, fav)
	})
	if err != nil {
		return model.FavoriteRecipe{}, err
	}

	s.logger.Info("Favorite service: favorite created", "favorite_id", created.ID.String(), "user_id", callerID.String())
	return created, nil
}

func (s *FavoriteRecipe) Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.FavoriteRecipe, error) {
	return withinTx(ctx, s.stores, s.logger, "Favorite service: update", func(uow model.UnitOfWork) (model.FavoriteRecipe, error) {
		favs := uow.Favorites()
		fav, err := favs.GetByID(ctx, id)
		if err != nil {
			return model.FavoriteRecipe{}, err
		}
		if fav.OwnerID != callerID {
			return model.FavoriteRecipe{}, model.ErrNotAuthorized
		}

		valid, err := validation.FavoriteRecipe.ValidateAll(fields, true)
		if err != nil {
			return model.FavoriteRecipe{}, err
		}
		applyFavorite(&fav, valid)
		return favs.Update(ctx, fav)
	})
}

func (s *FavoriteRecipe) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	_, err := withinTx(ctx, s.stores, s.logger, "Favorite service: delete", func(uow model.UnitOfWork) (struct{}, error) {
		favs := uow.Favorites()
		fav, err := favs.GetByID(ctx, id)
		if err != nil {
			return struct{}{}, err
		}
		if fav.OwnerID != callerID {
			return struct{}{}, model.ErrNotAuthorized
		}
		return struct{}{}, favs.Delete(ctx, id)
	})
	return err
}

func applyFavorite(f *model.FavoriteRecipe, fields model.Fields) {
	for name, v := range fields {
		switch name {
		case "title":
			f.Title = v.(string)
		case "country":
			f.Country = v.(string)
		case "rating":
			f.Rating = v.(float64)
		case "ingredients":
			f.Ingredients = v.(string)
		case "procedure":
			f.Procedure = v.(string)
		case "people_served":
			f.PeopleServed = v.(int)
		case "category":
			f.Category = v.(model.Category)
		case "cooking_time":
			f.CookingTime = v.(string)
		case "image_url":
			f.ImageURL = v.(string)
		case "video_link":
			f.VideoLink = v.(string)
		}
	}
}

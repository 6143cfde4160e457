package handler

import (
	"net/http"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

// FavoriteRecipe handles REST endpoints for the caller's favorites.
type FavoriteRecipe struct {
	favoriteService FavoriteRecipeService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

func NewFavoriteRecipe(favoriteService FavoriteRecipeService, contextManager model.ContextManager, logger *logger.Logger) *FavoriteRecipe {
	return &FavoriteRecipe{favoriteService: favoriteService, contextManager: contextManager, logger: logger}
}

func (h *FavoriteRecipe) List(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}

	page, err := h.favoriteService.List(r.Context(), userID, pagination(r))
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newPageResponse(page, newFavoriteRecipeResponse))
}

func (h *FavoriteRecipe) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	fav, err := h.favoriteService.Get(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newFavoriteRecipeResponse(fav))
}

func (h *FavoriteRecipe) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}
	fields, err := decodeFields(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	fav, err := h.favoriteService.Create(r.Context(), userID, fields)
	if err != nil {
		h.logger.Info("Favorite handler: create failed", "user_id", userID.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, newFavoriteRecipeResponse(fav))
}

func (h *FavoriteRecipe) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}
	fields, err := decodeFields(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	fav, err := h.favoriteService.Update(r.Context(), userID, id, fields)
	if err != nil {
		h.logger.Info("Favorite handler: update failed", "favorite_id", id.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newFavoriteRecipeResponse(fav))
}

func (h *FavoriteRecipe) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.favoriteService.Delete(r.Context(), userID, id); err != nil {
		h.logger.Info("Favorite handler: delete failed", "favorite_id", id.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

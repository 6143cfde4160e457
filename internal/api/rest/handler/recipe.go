package handler

import (
	"net/http"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

// Recipe handles REST endpoints for public recipes.
type Recipe struct {
	recipeService  RecipeService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRecipe creates a new Recipe handler.
func NewRecipe(recipeService RecipeService, contextManager model.ContextManager, logger *logger.Logger) *Recipe {
	return &Recipe{recipeService: recipeService, contextManager: contextManager, logger: logger}
}

// List returns a page of all recipes.
func (h *Recipe) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.recipeService.List(r.Context(), pagination(r))
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newPageResponse(page, newRecipeResponse))
}

// ListMine returns a page of the caller's recipes.
func (h *Recipe) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}

	page, err := h.recipeService.ListByOwner(r.Context(), userID, pagination(r))
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newPageResponse(page, newRecipeResponse))
}

func (h *Recipe) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	recipe, err := h.recipeService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newRecipeResponse(recipe))
}

func (h *Recipe) Create(w http.ResponseWriter, r *http.Request) {
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

	recipe, err := h.recipeService.Create(r.Context(), userID, fields)
	if err != nil {
		h.logger.Info("Recipe handler: create failed", "user_id", userID.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, newRecipeResponse(recipe))
}

func (h *Recipe) Update(w http.ResponseWriter, r *http.Request) {
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

	recipe, err := h.recipeService.Update(r.Context(), userID, id, fields)
	if err != nil {
		h.logger.Info("Recipe handler: update failed", "recipe_id", id.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newRecipeResponse(recipe))
}

func (h *Recipe) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.recipeService.Delete(r.Context(), userID, id); err != nil {
		h.logger.Info("Recipe handler: delete failed", "recipe_id", id.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

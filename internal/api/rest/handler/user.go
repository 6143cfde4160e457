package handler

import (
	"net/http"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

// User handles REST endpoints for accounts.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{userService: userService, contextManager: contextManager, logger: logger}
}

// List returns a page of all users. Admin only.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}

	page, err := h.userService.ListAll(r.Context(), userID, pagination(r))
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newPageResponse(page, newUserResponse))
}

// Me returns the caller's profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		handleError(w, err)
		return
	}

	user, err := h.userService.GetSelf(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponse(user))
}

func (h *User) Update(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.userService.Update(r.Context(), userID, id, fields)
	if err != nil {
		h.logger.Info("User handler: update failed", "user_id", id.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newUserResponse(user))
}

func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.userService.Delete(r.Context(), userID, id); err != nil {
		h.logger.Info("User handler: delete failed", "user_id", id.String(), "error", err.Error())
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

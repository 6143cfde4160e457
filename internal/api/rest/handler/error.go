package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/model"
)

func handleError(w http.ResponseWriter, err error) {
	var verrs model.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		response.Error(w, http.StatusUnprocessableEntity, verrs.Messages()...)
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, model.ErrNotAuthorized):
		response.Error(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, model.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Admin privileges required")
	case errors.Is(err, model.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Record not found")
	default:
		response.Error(w, http.StatusInternalServerError, "An error occurred while processing the request")
	}
}

package handler

import (
	"net/http"

	"github.com/dtroode/tastebite-server/internal/api/rest/response"
	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
)

type signUpRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	ImageURL             string `json:"image_url"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Auth handles REST endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

// SignUp registers a user and returns the session.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Auth handler: processing signup request", "username", req.Username)

	session, err := h.authService.SignUp(r.Context(), model.SignUpParams{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		ImageURL:             req.ImageURL,
	})
	if err != nil {
		h.logger.Info("Auth handler: signup failed", "username", req.Username, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, newSessionResponse(session))
}

// Login verifies credentials and returns the session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed", "username", req.Username, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, newSessionResponse(session))
}

// Refresh rotates the refresh token sent as a bearer token or in the body.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := refreshToken(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		h.logger.Info("Auth handler: refresh failed", "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout revokes the refresh token sent as a bearer token or in the body.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := refreshToken(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		h.logger.Info("Auth handler: logout failed", "error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func refreshToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if token := bearerToken(r); token != "" {
		return token, nil
	}
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return "", err
	}
	return req.RefreshToken, nil
}

func newSessionResponse(s model.Session) sessionResponse {
	return sessionResponse{
		User:         newUserResponse(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

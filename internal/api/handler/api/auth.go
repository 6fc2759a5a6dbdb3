// Package api holds the JSON API handlers.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/profile"
)

// AuthHandler handles session login, logout and identity lookup.
type AuthHandler struct {
	profiles *profile.Service
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(profiles *profile.Service, reg *metrics.Registry, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{profiles: profiles, metrics: reg, logger: logger}
}

// LoginRequest is the request body for opening a session.
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse carries the new session token and starter profile.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile profile.Profile `json:"profile"`
}

// Login opens a demo session for any email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if req.Email == "" {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidRequest)
		return
	}

	p, token := h.profiles.Login(r.Context(), req.Email)
	if h.metrics != nil {
		h.metrics.SessionOpened()
	}

	response.JSON(w, http.StatusOK, LoginResponse{Token: token, Profile: p})
}

// Logout ends the session named by the bearer token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	h.profiles.Logout(r.Context(), token)
	if h.metrics != nil {
		h.metrics.SessionClosed()
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the session's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/gate"
	"github.com/newthinker/stratix/internal/profile"
)

// ProfileHandler serves profile updates and the gated navigation model.
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Update applies a partial profile patch to the session.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	var patch profile.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	p, err := h.profiles.Update(r.Context(), token, patch)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

// Nav returns the navigation items with lock state for the session's level.
func (h *ProfileHandler) Nav(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}
	response.JSON(w, http.StatusOK, gate.Nav(&p))
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/journal"
)

// TradesHandler serves the trade journal CRUD and analytics.
type TradesHandler struct {
	journal *journal.Store
}

// NewTradesHandler creates a new trades handler.
func NewTradesHandler(store *journal.Store) *TradesHandler {
	return &TradesHandler{journal: store}
}

func (h *TradesHandler) userID(r *http.Request) (string, bool) {
	p, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		return "", false
	}
	return p.ID, true
}

// List returns the session user's trades.
func (h *TradesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}
	response.JSON(w, http.StatusOK, h.journal.List(userID))
}

// Create records a new trade.
func (h *TradesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	var t journal.Trade
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if t.Symbol == "" {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidRequest)
		return
	}

	response.JSON(w, http.StatusCreated, h.journal.Add(userID, t))
}

// Get returns one trade by {id}.
func (h *TradesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	t, err := h.journal.Get(userID, r.PathValue("id"))
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, t)
}

// Update replaces the trade named by {id}.
func (h *TradesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	var t journal.Trade
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	t.ID = r.PathValue("id")

	updated, err := h.journal.Update(userID, t)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// Delete removes the trade named by {id}.
func (h *TradesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	if err := h.journal.Delete(userID, r.PathValue("id")); err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Analytics returns the behavioral breakdown of the user's journal.
func (h *TradesHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}
	response.JSON(w, http.StatusOK, h.journal.Analyze(userID))
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/assessment"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/profile"
)

// AssessmentHandler serves the questionnaire and scores submissions.
type AssessmentHandler struct {
	profiles *profile.Service
	metrics  *metrics.Registry
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(profiles *profile.Service, reg *metrics.Registry) *AssessmentHandler {
	return &AssessmentHandler{profiles: profiles, metrics: reg}
}

// Questions returns the fixed questionnaire.
func (h *AssessmentHandler) Questions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, assessment.Questions)
}

// SubmitRequest is an answered questionnaire plus starting capital.
type SubmitRequest struct {
	Answers map[int]string `json:"answers"`
	Capital float64        `json:"capital"`
}

// SubmitResponse reports the computed level and the committed profile.
type SubmitResponse struct {
	Level   int             `json:"level"`
	Profile profile.Profile `json:"profile"`
}

// Submit scores the answers and commits the result to the profile.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, core.ErrSessionNotFound)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	level := assessment.Score(req.Answers)
	if h.metrics != nil {
		h.metrics.RecordAssessment(strconv.Itoa(int(level)))
	}

	p, err := h.profiles.CompleteAssessment(r.Context(), token, level, req.Capital)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, SubmitResponse{Level: int(level), Profile: p})
}

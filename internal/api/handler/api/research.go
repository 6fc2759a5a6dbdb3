package api

import (
	"encoding/json"
	"net/http"

	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/research"
)

// ResearchHandler serves the quant research lab API.
type ResearchHandler struct {
	lab *research.Lab
}

// NewResearchHandler creates a new research handler.
func NewResearchHandler(lab *research.Lab) *ResearchHandler {
	return &ResearchHandler{lab: lab}
}

// Templates returns the strategy blueprints.
func (h *ResearchHandler) Templates(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.lab.Templates())
}

// CreateExperimentRequest is the request body for a new experiment.
type CreateExperimentRequest struct {
	Name         string `json:"name"`
	StrategyType string `json:"strategy_type"`
	Description  string `json:"description"`
}

// CreateExperiment registers a new experiment.
func (h *ResearchHandler) CreateExperiment(w http.ResponseWriter, r *http.Request) {
	var req CreateExperimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if req.Name == "" || req.StrategyType == "" {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidRequest)
		return
	}

	exp := h.lab.CreateExperiment(req.Name, req.StrategyType, req.Description)
	response.JSON(w, http.StatusCreated, exp)
}

// ListExperiments returns all experiments, newest first.
func (h *ResearchHandler) ListExperiments(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.lab.Experiments())
}

// ExperimentRuns returns the runs of the experiment named by {id}.
func (h *ResearchHandler) ExperimentRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.lab.Runs(r.PathValue("id"))
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, runs)
}

// LogRun records a backtest run against an experiment.
func (h *ResearchHandler) LogRun(w http.ResponseWriter, r *http.Request) {
	var run research.Run
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	if run.ExperimentID == "" {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidRequest)
		return
	}

	logged, err := h.lab.LogRun(run)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"run_id": logged.RunID})
}

// CompareRuns resolves run IDs to runs for side-by-side comparison.
func (h *ResearchHandler) CompareRuns(w http.ResponseWriter, r *http.Request) {
	var runIDs []string
	if err := json.NewDecoder(r.Body).Decode(&runIDs); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	response.JSON(w, http.StatusOK, h.lab.Compare(runIDs))
}

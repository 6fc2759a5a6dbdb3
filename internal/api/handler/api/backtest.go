package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/newthinker/stratix/internal/api/job"
	"github.com/newthinker/stratix/internal/api/middleware"
	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/backtest"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/metrics"
	"github.com/newthinker/stratix/internal/storage/archive"
	"github.com/newthinker/stratix/internal/strategy"
	"github.com/newthinker/stratix/internal/strategy/emacross"
)

const backtestTimeout = 5 * time.Minute

// BacktestRequest is the request body for starting a backtest. Either a
// curated strategy ID or explicit params select the simulated strategy.
type BacktestRequest struct {
	Symbol   string           `json:"symbol"`
	Strategy string           `json:"strategy,omitempty"`
	Params   *strategy.Params `json:"params,omitempty"`
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Capital  float64          `json:"capital,omitempty"`
}

// BacktestHandler handles backtest API requests.
type BacktestHandler struct {
	jobStore   *job.Store
	backtester *backtest.Backtester
	archive    *archive.Results
	metrics    *metrics.Registry
	logger     *zap.Logger
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(
	jobStore *job.Store,
	backtester *backtest.Backtester,
	results *archive.Results,
	reg *metrics.Registry,
	logger *zap.Logger,
) *BacktestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BacktestHandler{
		jobStore:   jobStore,
		backtester: backtester,
		archive:    results,
		metrics:    reg,
		logger:     logger,
	}
}

// resolveStrategy builds the simulated strategy from a catalog ID or
// explicit params, preferring explicit params.
func resolveStrategy(req BacktestRequest) (strategy.Strategy, error) {
	if req.Params != nil {
		return emacross.New(*req.Params), nil
	}
	if req.Strategy != "" {
		entry, ok := strategy.CatalogEntry(req.Strategy)
		if !ok {
			return nil, core.ErrStrategyNotFound
		}
		return emacross.New(entry.Params), nil
	}
	return emacross.New(strategy.Params{}), nil
}

// Create starts a new backtest job.
func (h *BacktestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	if req.Symbol == "" {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidRequest)
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrInvalidRequest, err))
		return
	}

	strat, err := resolveStrategy(req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	// Capital defaults to the session profile's trading capital.
	capital := req.Capital
	if capital <= 0 {
		if p, ok := middleware.ProfileFrom(r.Context()); ok {
			capital = p.Capital
		}
	}
	if capital <= 0 {
		capital = 10000
	}

	j := h.jobStore.Create("backtest")
	jobID := j.ID
	status := j.Status

	go h.runBacktest(jobID, strat, req.Symbol, start, end, capital)

	response.JSON(w, http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"status": status,
	})
}

// runBacktest executes the backtest and updates job status.
func (h *BacktestHandler) runBacktest(
	jobID string,
	strat strategy.Strategy,
	symbol string,
	start, end time.Time,
	capital float64,
) {
	h.jobStore.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusRunning
	})

	began := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), backtestTimeout)
	defer cancel()
	result, err := h.backtester.Run(ctx, strat, symbol, start, end, capital)

	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordBacktest("failed", time.Since(began).Seconds())
		}
		h.jobStore.Update(jobID, func(j *job.Job) {
			j.Status = job.StatusFailed
			j.Error = core.WrapError(core.ErrBacktestFailed, err)
		})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordBacktest("completed", time.Since(began).Seconds())
	}
	if h.archive != nil {
		if err := h.archive.Save(ctx, jobID, result); err != nil {
			h.logger.Warn("result archive failed",
				zap.String("job_id", jobID), zap.Error(err))
		}
	}

	h.jobStore.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Progress = 100
		j.Result = result
	})
}

// GetStatus returns the status of the backtest job named by {id}.
func (h *BacktestHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobStore.Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}

	resp := map[string]any{
		"job_id":   j.ID,
		"status":   j.Status,
		"progress": j.Progress,
	}

	if j.Status == job.StatusComplete {
		resp["result"] = j.Result
	}
	if j.Status == job.StatusFailed && j.Error != nil {
		resp["error"] = map[string]string{
			"code":    j.Error.Code,
			"message": j.Error.Message,
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

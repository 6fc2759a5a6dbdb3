package api

import (
	"net/http"

	"github.com/newthinker/stratix/internal/api/response"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/strategy"
)

// simEngine is the engine that simulates every catalog preset.
const simEngine = "ema_crossover"

// StrategiesHandler serves the curated strategy catalog.
type StrategiesHandler struct {
	engine *strategy.Engine
}

// NewStrategiesHandler creates a new strategies handler.
func NewStrategiesHandler(engine *strategy.Engine) *StrategiesHandler {
	return &StrategiesHandler{engine: engine}
}

// catalogStrategy is a catalog entry annotated with the engine that
// simulates it and whether that engine is registered.
type catalogStrategy struct {
	strategy.CuratedStrategy
	Engine   string `json:"engine"`
	Runnable bool   `json:"runnable"`
}

func (h *StrategiesHandler) describe(entry strategy.CuratedStrategy) catalogStrategy {
	runnable := false
	if h.engine != nil {
		_, runnable = h.engine.Get(simEngine)
	}
	return catalogStrategy{CuratedStrategy: entry, Engine: simEngine, Runnable: runnable}
}

// List returns the curated strategy catalog.
func (h *StrategiesHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog := strategy.Catalog()
	out := make([]catalogStrategy, 0, len(catalog))
	for _, entry := range catalog {
		out = append(out, h.describe(entry))
	}
	response.JSON(w, http.StatusOK, out)
}

// Get returns one catalog entry by {id}.
func (h *StrategiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, ok := strategy.CatalogEntry(r.PathValue("id"))
	if !ok {
		response.Error(w, http.StatusNotFound, core.ErrStrategyNotFound)
		return
	}
	response.JSON(w, http.StatusOK, h.describe(entry))
}

// Package research implements the quant research lab: strategy templates,
// experiments and logged backtest runs with their metrics.
package research

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/newthinker/stratix/internal/core"
)

// Template is a reusable strategy blueprint shown in the lab.
type Template struct {
	TemplateID    string         `json:"template_id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	DefaultParams map[string]any `json:"default_params"`
}

// Experiment groups related backtest runs under one hypothesis.
type Experiment struct {
	ExperimentID string    `json:"experiment_id"`
	Name         string    `json:"name"`
	StrategyType string    `json:"strategy_type"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
	RunCount     int       `json:"run_count"`
}

// Metrics are the performance figures logged with a run.
type Metrics struct {
	SharpeRatio  float64 `json:"sharpe_ratio,omitempty"`
	SortinoRatio float64 `json:"sortino_ratio,omitempty"`
	MaxDrawdown  float64 `json:"max_drawdown,omitempty"`
	HitRate      float64 `json:"hit_rate,omitempty"`
	TotalTrades  int     `json:"total_trades,omitempty"`
	Turnover     float64 `json:"turnover,omitempty"`
	TotalReturn  float64 `json:"total_return,omitempty"`
	WinRate      float64 `json:"win_rate,omitempty"`
}

// Run is one logged backtest inside an experiment.
type Run struct {
	RunID        string         `json:"run_id"`
	ExperimentID string         `json:"experiment_id"`
	RunName      string         `json:"run_name"`
	Symbol       string         `json:"symbol"`
	Timeframe    string         `json:"timeframe"`
	Parameters   map[string]any `json:"parameters"`
	Metrics      Metrics        `json:"metrics"`
	StartDate    string         `json:"start_date,omitempty"`
	EndDate      string         `json:"end_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

const statusActive = "active"

// Lab is the in-memory experiment tracker.
type Lab struct {
	mu          sync.RWMutex
	now         func() time.Time
	experiments map[string]*Experiment
	runs        map[string][]Run // keyed by experiment ID
	runIndex    map[string]Run   // keyed by run ID
}

// NewLab creates an empty research lab.
func NewLab() *Lab {
	return &Lab{
		now:         time.Now,
		experiments: make(map[string]*Experiment),
		runs:        make(map[string][]Run),
		runIndex:    make(map[string]Run),
	}
}

// Templates returns the built-in strategy blueprints.
func (l *Lab) Templates() []Template {
	return []Template{
		{
			TemplateID:  "momentum",
			Name:        "Momentum Breakout",
			Category:    "Momentum",
			Description: "Buy strength through the upper band on a volume spike.",
			DefaultParams: map[string]any{
				"period": 20, "std_dev": 2.0, "volume_factor": 1.5,
			},
		},
		{
			TemplateID:  "mean-reversion",
			Name:        "RSI Mean Reversion",
			Category:    "Mean-Reversion",
			Description: "Fade oversold readings, exit into overbought.",
			DefaultParams: map[string]any{
				"period": 14, "oversold": 30, "overbought": 70,
			},
		},
		{
			TemplateID:  "seasonality",
			Name:        "Seasonal Bias",
			Category:    "Seasonality",
			Description: "Hold through historically favorable calendar windows.",
			DefaultParams: map[string]any{
				"entry_day": 25, "exit_day": 3,
			},
		},
	}
}

// CreateExperiment registers a new experiment and returns it.
func (l *Lab) CreateExperiment(name, strategyType, description string) Experiment {
	exp := &Experiment{
		ExperimentID: uuid.NewString(),
		Name:         name,
		StrategyType: strategyType,
		Description:  description,
		CreatedAt:    l.now(),
		Status:       statusActive,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.experiments[exp.ExperimentID] = exp
	return *exp
}

// Experiments lists all experiments, newest first.
func (l *Lab) Experiments() []Experiment {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Experiment, 0, len(l.experiments))
	for _, exp := range l.experiments {
		out = append(out, *exp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Experiment returns one experiment by ID.
func (l *Lab) Experiment(id string) (Experiment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	exp, ok := l.experiments[id]
	if !ok {
		return Experiment{}, core.ErrExperimentNotFound
	}
	return *exp, nil
}

// LogRun records a backtest run against an existing experiment.
func (l *Lab) LogRun(run Run) (Run, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.experiments[run.ExperimentID]
	if !ok {
		return Run{}, core.ErrExperimentNotFound
	}

	run.RunID = uuid.NewString()
	run.CreatedAt = l.now()
	l.runs[run.ExperimentID] = append(l.runs[run.ExperimentID], run)
	l.runIndex[run.RunID] = run
	exp.RunCount++
	return run, nil
}

// Runs lists an experiment's runs, newest first.
func (l *Lab) Runs(experimentID string) ([]Run, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.experiments[experimentID]; !ok {
		return nil, core.ErrExperimentNotFound
	}
	runs := make([]Run, len(l.runs[experimentID]))
	copy(runs, l.runs[experimentID])
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// Compare resolves run IDs to their runs, preserving request order.
// Unknown IDs are skipped.
func (l *Lab) Compare(runIDs []string) []Run {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Run, 0, len(runIDs))
	for _, id := range runIDs {
		if run, ok := l.runIndex[id]; ok {
			out = append(out, run)
		}
	}
	return out
}

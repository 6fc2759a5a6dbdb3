package research

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newthinker/stratix/internal/core"
)

func TestTemplates(t *testing.T) {
	lab := NewLab()

	templates := lab.Templates()
	require.Len(t, templates, 3)

	categories := make(map[string]bool)
	for _, tpl := range templates {
		assert.NotEmpty(t, tpl.TemplateID)
		assert.NotEmpty(t, tpl.DefaultParams)
		categories[tpl.Category] = true
	}
	assert.True(t, categories["Momentum"])
	assert.True(t, categories["Mean-Reversion"])
	assert.True(t, categories["Seasonality"])
}

func TestCreateAndListExperiments(t *testing.T) {
	lab := NewLab()
	clock := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lab.now = func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}

	first := lab.CreateExperiment("ema sweep", "momentum", "grid over fast/slow")
	second := lab.CreateExperiment("rsi bands", "mean-reversion", "")

	assert.NotEmpty(t, first.ExperimentID)
	assert.Equal(t, "active", first.Status)

	exps := lab.Experiments()
	require.Len(t, exps, 2)
	assert.Equal(t, second.ExperimentID, exps[0].ExperimentID)
	assert.Equal(t, first.ExperimentID, exps[1].ExperimentID)

	got, err := lab.Experiment(first.ExperimentID)
	require.NoError(t, err)
	assert.Equal(t, "ema sweep", got.Name)

	_, err = lab.Experiment("missing")
	assert.ErrorIs(t, err, core.ErrExperimentNotFound)
}

func TestLogRunIncrementsCount(t *testing.T) {
	lab := NewLab()
	exp := lab.CreateExperiment("ema sweep", "momentum", "")

	run, err := lab.LogRun(Run{
		ExperimentID: exp.ExperimentID,
		RunName:      "fast=10 slow=30",
		Symbol:       "AAPL",
		Timeframe:    "1d",
		Parameters:   map[string]any{"fast": 10, "slow": 30},
		Metrics:      Metrics{SharpeRatio: 1.2, TotalTrades: 14},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.RunID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := lab.Experiment(exp.ExperimentID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)

	runs, err := lab.Runs(exp.ExperimentID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.InDelta(t, 1.2, runs[0].Metrics.SharpeRatio, 1e-9)
}

func TestLogRunUnknownExperiment(t *testing.T) {
	lab := NewLab()

	_, err := lab.LogRun(Run{ExperimentID: "missing"})
	assert.ErrorIs(t, err, core.ErrExperimentNotFound)

	_, err = lab.Runs("missing")
	assert.ErrorIs(t, err, core.ErrExperimentNotFound)
}

func TestCompareKeepsRequestOrder(t *testing.T) {
	lab := NewLab()
	exp := lab.CreateExperiment("ema sweep", "momentum", "")

	a, err := lab.LogRun(Run{ExperimentID: exp.ExperimentID, RunName: "a"})
	require.NoError(t, err)
	b, err := lab.LogRun(Run{ExperimentID: exp.ExperimentID, RunName: "b"})
	require.NoError(t, err)

	got := lab.Compare([]string{b.RunID, "missing", a.RunID})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].RunName)
	assert.Equal(t, "a", got[1].RunName)
}

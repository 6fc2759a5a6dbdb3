package strategy

import (
	"time"

	"github.com/newthinker/stratix/internal/core"
)

// Params are the tunable knobs of a strategy run. StopLoss and TakeProfit
// are percentages of the entry price.
type Params struct {
	FastEMA    int     `json:"fastEMA"`
	SlowEMA    int     `json:"slowEMA"`
	StopLoss   float64 `json:"stopLoss"`
	TakeProfit float64 `json:"takeProfit"`
}

// AnalysisContext provides data to strategies.
type AnalysisContext struct {
	Symbol string
	OHLCV  []core.OHLCV
	Now    time.Time
}

// Strategy defines the interface for trading strategies.
type Strategy interface {
	Name() string
	Description() string

	// RequiredBars is how much price history Analyze needs to produce a
	// meaningful result.
	RequiredBars() int

	// Params returns the parameters the strategy currently runs with.
	Params() Params

	Analyze(ctx AnalysisContext) ([]core.Signal, error)
}

package backtest

import (
	"encoding/json"
	"math"
	"time"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/strategy"
)

// Result holds the complete backtest output.
type Result struct {
	Strategy       string          `json:"strategy"`
	Symbol         string          `json:"symbol"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Params         strategy.Params `json:"params"`
	InitialCapital float64         `json:"initialCapital"`
	Signals        []core.Signal   `json:"signals"`
	Trades         []Trade         `json:"trades"`
	Stats          Stats           `json:"stats"`
	EquityCurve    []EquityPoint   `json:"equityCurve"`
}

// ExitReason records why a simulated trade closed.
type ExitReason string

const (
	ExitSignal     ExitReason = "signal"
	ExitStopLoss   ExitReason = "stop_loss"
	ExitTakeProfit ExitReason = "take_profit"
	ExitEndOfData  ExitReason = "end_of_data"
)

// Trade represents a simulated trade from entry to exit.
type Trade struct {
	EntryTime  time.Time  `json:"entryTime"`
	ExitTime   time.Time  `json:"exitTime"`
	EntryPrice float64    `json:"entryPrice"`
	ExitPrice  float64    `json:"exitPrice"`
	Return     float64    `json:"return"` // Fractional return
	ExitReason ExitReason `json:"exitReason"`
	Closed     bool       `json:"closed"`
}

// IsWin returns true if the trade was profitable.
func (t Trade) IsWin() bool {
	return t.Return > 0
}

// EquityPoint is one sample of the simulated account value.
type EquityPoint struct {
	Date     time.Time `json:"date"`
	Equity   float64   `json:"equity"`
	Drawdown float64   `json:"drawdown"` // Percent below the running peak
}

// profitFactorCap stands in for an infinite profit factor when stats are
// serialized. A run with no losing trades divides by zero gross loss.
const profitFactorCap = 999.0

// Stats holds performance statistics.
type Stats struct {
	NumTrades     int     `json:"numTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	WinRate       float64 `json:"winRate"`     // Percentage of profitable trades
	TotalReturn   float64 `json:"totalReturn"` // Net return percentage
	MaxDrawdown   float64 `json:"maxDrawdown"` // Largest peak-to-trough decline, percent
	SharpeRatio   float64 `json:"sharpeRatio"` // Risk-adjusted return (annualized)
	ProfitFactor  float64 `json:"profitFactor"`
	AvgWin        float64 `json:"avgWin"`  // Percent
	AvgLoss       float64 `json:"avgLoss"` // Percent, negative
	LargestWin    float64 `json:"largestWin"`
	LargestLoss   float64 `json:"largestLoss"`
}

// MarshalJSON caps non-finite ratios, which encoding/json refuses to emit.
func (s Stats) MarshalJSON() ([]byte, error) {
	type stats Stats // local alias sheds this method
	out := stats(s)
	out.ProfitFactor = finiteStat(out.ProfitFactor)
	out.SharpeRatio = finiteStat(out.SharpeRatio)
	return json.Marshal(out)
}

func finiteStat(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return profitFactorCap
	case math.IsInf(v, -1):
		return -profitFactorCap
	}
	return v
}

package scanner

import (
	"math"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/indicator"
)

// AdvancedFilter is a gated scan predicate over a symbol's price history.
// Each filter carries its own unlock level, checked independently against
// the session profile.
type AdvancedFilter struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	RequiredLevel int    `json:"requiredLevel"`

	matches func(bars []core.OHLCV) bool
}

// AdvancedFilters returns the gated filter set in display order.
func AdvancedFilters() []AdvancedFilter {
	return []AdvancedFilter{
		{
			Name:          "RSI Divergence",
			Description:   "Detect bullish/bearish RSI divergence patterns",
			RequiredLevel: 5,
			matches:       rsiDivergence,
		},
		{
			Name:          "Relative Volume (RVOL)",
			Description:   "Stocks trading 3x+ their average volume - often signals big moves",
			RequiredLevel: 7,
			matches:       highRelativeVolume,
		},
		{
			Name:          "Volatility Regime",
			Description:   "Identify low/high volatility environments for optimal strategy selection",
			RequiredLevel: 9,
			matches:       lowVolatilityRegime,
		},
	}
}

func filterByName(name string) (AdvancedFilter, bool) {
	for _, f := range AdvancedFilters() {
		if f.Name == name {
			return f, true
		}
	}
	return AdvancedFilter{}, false
}

// rsiDivergence flags a bullish divergence: price making a lower low while
// RSI makes a higher low over the scan window.
func rsiDivergence(bars []core.OHLCV) bool {
	const period = 14
	if len(bars) < period*2 {
		return false
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	rsi := indicator.RSI(closes, period)
	if len(rsi) < period {
		return false
	}

	half := len(rsi) / 2
	priceOffset := len(closes) - len(rsi)

	firstPriceLow, firstRSILow := lowPoint(closes[priceOffset:priceOffset+half], rsi[:half])
	lastPriceLow, lastRSILow := lowPoint(closes[priceOffset+half:], rsi[half:])

	return lastPriceLow < firstPriceLow && lastRSILow > firstRSILow
}

// lowPoint returns the price at the window's RSI minimum alongside that RSI.
func lowPoint(prices, rsi []float64) (float64, float64) {
	minIdx := 0
	for i := 1; i < len(rsi); i++ {
		if rsi[i] < rsi[minIdx] {
			minIdx = i
		}
	}
	return prices[minIdx], rsi[minIdx]
}

// highRelativeVolume flags symbols trading at 3x+ their 20-bar average.
func highRelativeVolume(bars []core.OHLCV) bool {
	volumes := make([]int64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return indicator.RelativeVolume(volumes, 20) >= 3
}

// lowVolatilityRegime flags symbols whose recent daily return volatility is
// under 2%, a regime suited to mean-reversion entries.
func lowVolatilityRegime(bars []core.OHLCV) bool {
	if len(bars) < 21 {
		return false
	}

	recent := bars[len(bars)-21:]
	returns := make([]float64, 0, len(recent)-1)
	for i := 1; i < len(recent); i++ {
		if recent[i-1].Close == 0 {
			return false
		}
		returns = append(returns, recent[i].Close/recent[i-1].Close-1)
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)-1))

	return stdDev < 0.02
}

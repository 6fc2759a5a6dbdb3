package backtest

import "math"

// CalculateStats computes performance statistics from trades.
func CalculateStats(trades []Trade) Stats {
	if len(trades) == 0 {
		return Stats{}
	}

	var winning, losing int
	var totalReturn, grossWin, grossLoss float64
	var largestWin, largestLoss float64
	var returns []float64

	for _, t := range trades {
		if !t.Closed {
			continue
		}
		returns = append(returns, t.Return)
		totalReturn += t.Return
		if t.IsWin() {
			winning++
			grossWin += t.Return
			if t.Return > largestWin {
				largestWin = t.Return
			}
		} else {
			losing++
			grossLoss += -t.Return
			if t.Return < largestLoss {
				largestLoss = t.Return
			}
		}
	}

	closed := winning + losing
	var winRate, profitFactor, avgWin, avgLoss float64
	if closed > 0 {
		winRate = float64(winning) / float64(closed) * 100
	}
	if grossLoss > 0 {
		profitFactor = grossWin / grossLoss
	} else if grossWin > 0 {
		profitFactor = math.Inf(1)
	}
	if winning > 0 {
		avgWin = grossWin / float64(winning) * 100
	}
	if losing > 0 {
		avgLoss = -grossLoss / float64(losing) * 100
	}

	return Stats{
		NumTrades:     len(trades),
		WinningTrades: winning,
		LosingTrades:  losing,
		WinRate:       winRate,
		TotalReturn:   totalReturn * 100,
		MaxDrawdown:   calculateMaxDrawdown(returns) * 100,
		SharpeRatio:   calculateSharpeRatio(returns),
		ProfitFactor:  profitFactor,
		AvgWin:        avgWin,
		AvgLoss:       avgLoss,
		LargestWin:    largestWin * 100,
		LargestLoss:   largestLoss * 100,
	}
}

// calculateMaxDrawdown finds the largest peak-to-trough decline over the
// compounded trade returns.
func calculateMaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var maxDD float64
	var peak float64
	cumulative := 1.0

	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if peak > 0 {
			dd := (peak - cumulative) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}

// calculateSharpeRatio computes risk-adjusted return, assuming a zero
// risk-free rate and ~252 trading days per year.
func calculateSharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
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
	if stdDev == 0 {
		return 0
	}

	annualizedReturn := mean * 252
	annualizedStdDev := stdDev * math.Sqrt(252)
	return annualizedReturn / annualizedStdDev
}

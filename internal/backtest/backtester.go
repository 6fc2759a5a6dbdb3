package backtest

import (
	"context"
	"time"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/strategy"
)

// OHLCVProvider fetches historical candles for a symbol.
type OHLCVProvider interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time, interval string) ([]core.OHLCV, error)
}

// Backtester runs strategy backtests against historical data.
type Backtester struct {
	provider OHLCVProvider
}

// New creates a Backtester with the given data provider.
func New(provider OHLCVProvider) *Backtester {
	return &Backtester{provider: provider}
}

// Run executes a backtest over the given range. The strategy's stop-loss and
// take-profit percentages are enforced intrabar against the lows and highs;
// otherwise positions open and close on crossover signals.
func (b *Backtester) Run(ctx context.Context, strat strategy.Strategy, symbol string, start, end time.Time, initialCapital float64) (*Result, error) {
	ohlcv, err := b.provider.FetchHistory(ctx, symbol, start, end, "1d")
	if err != nil {
		return nil, err
	}
	if len(ohlcv) == 0 {
		return nil, core.ErrNoData
	}
	if initialCapital <= 0 {
		initialCapital = 10000
	}

	params := strat.Params()
	windowSize := strat.RequiredBars()
	if windowSize <= 0 {
		windowSize = 1
	}

	var allSignals []core.Signal
	var trades []Trade
	var open *Trade
	equityCurve := make([]EquityPoint, 0, len(ohlcv))

	equity := initialCapital
	peak := initialCapital

	for i := range ohlcv {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		bar := ohlcv[i]

		// Protective exits are evaluated before new signals: an open
		// position can stop out on the same bar a crossover fires.
		if open != nil {
			if stop := open.EntryPrice * (1 - params.StopLoss/100); bar.Low <= stop {
				open = closeTrade(open, stop, bar.Time, ExitStopLoss, &trades, &equity)
			} else if target := open.EntryPrice * (1 + params.TakeProfit/100); bar.High >= target {
				open = closeTrade(open, target, bar.Time, ExitTakeProfit, &trades, &equity)
			}
		}

		windowStart := i - windowSize + 1
		if windowStart < 0 {
			windowStart = 0
		}
		signals, err := strat.Analyze(strategy.AnalysisContext{
			Symbol: symbol,
			OHLCV:  ohlcv[windowStart : i+1],
			Now:    bar.Time,
		})
		if err != nil {
			continue // skip bars with analysis errors
		}

		for _, sig := range signals {
			sig.Price = bar.Close
			sig.Strategy = strat.Name()
			allSignals = append(allSignals, sig)

			switch sig.Action {
			case core.ActionBuy:
				if open == nil {
					open = &Trade{
						EntryTime:  bar.Time,
						EntryPrice: bar.Close,
					}
				}
			case core.ActionSell:
				if open != nil {
					open = closeTrade(open, bar.Close, bar.Time, ExitSignal, &trades, &equity)
				}
			}
		}

		markToMarket := equity
		if open != nil {
			markToMarket = equity * (bar.Close / open.EntryPrice)
		}
		if markToMarket > peak {
			peak = markToMarket
		}
		drawdown := 0.0
		if peak > 0 {
			drawdown = (peak - markToMarket) / peak * 100
		}
		equityCurve = append(equityCurve, EquityPoint{
			Date:     bar.Time,
			Equity:   markToMarket,
			Drawdown: drawdown,
		})
	}

	// Close any remaining position at the final bar.
	if open != nil {
		last := ohlcv[len(ohlcv)-1]
		open.ExitPrice = last.Close
		open.ExitTime = last.Time
		open.Return = (last.Close - open.EntryPrice) / open.EntryPrice
		open.ExitReason = ExitEndOfData
		trades = append(trades, *open)
	}

	return &Result{
		Strategy:       strat.Name(),
		Symbol:         symbol,
		StartDate:      start,
		EndDate:        end,
		Params:         params,
		InitialCapital: initialCapital,
		Signals:        allSignals,
		Trades:         trades,
		Stats:          CalculateStats(trades),
		EquityCurve:    equityCurve,
	}, nil
}

// closeTrade finalizes the open trade and compounds its return into equity.
func closeTrade(open *Trade, price float64, at time.Time, reason ExitReason, trades *[]Trade, equity *float64) *Trade {
	open.ExitPrice = price
	open.ExitTime = at
	open.Return = (price - open.EntryPrice) / open.EntryPrice
	open.ExitReason = reason
	open.Closed = true
	*equity *= 1 + open.Return
	*trades = append(*trades, *open)
	return nil
}

// Package emacross implements the EMA crossover strategy behind the curated
// strategy catalog: long on a golden cross, flat on a death cross.
package emacross

import (
	"fmt"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/indicator"
	"github.com/newthinker/stratix/internal/strategy"
)

// EMACross implements strategy.Strategy.
type EMACross struct {
	params strategy.Params
}

// New creates an EMA crossover strategy. Zero-valued params fall back to a
// 20/50 cross with a 2%/4% stop/target.
func New(p strategy.Params) *EMACross {
	if p.FastEMA <= 0 {
		p.FastEMA = 20
	}
	if p.SlowEMA <= 0 {
		p.SlowEMA = 50
	}
	if p.SlowEMA <= p.FastEMA {
		p.SlowEMA = p.FastEMA * 2
	}
	if p.StopLoss <= 0 {
		p.StopLoss = 2
	}
	if p.TakeProfit <= 0 {
		p.TakeProfit = 4
	}
	return &EMACross{params: p}
}

func (s *EMACross) Name() string {
	return "ema_crossover"
}

func (s *EMACross) Description() string {
	return fmt.Sprintf("EMA Crossover (%d/%d)", s.params.FastEMA, s.params.SlowEMA)
}

func (s *EMACross) RequiredBars() int {
	return s.params.SlowEMA + 10
}

func (s *EMACross) Params() strategy.Params {
	return s.params
}

func (s *EMACross) Analyze(ctx strategy.AnalysisContext) ([]core.Signal, error) {
	if len(ctx.OHLCV) < s.params.SlowEMA+1 {
		return nil, nil // not enough data yet
	}

	prices := make([]float64, len(ctx.OHLCV))
	for i, bar := range ctx.OHLCV {
		prices[i] = bar.Close
	}

	fast := indicator.EMA(prices, s.params.FastEMA)
	slow := indicator.EMA(prices, s.params.SlowEMA)
	if len(fast) < 2 || len(slow) < 2 {
		return nil, nil
	}

	currFast, prevFast := fast[len(fast)-1], fast[len(fast)-2]
	currSlow, prevSlow := slow[len(slow)-1], slow[len(slow)-2]

	var signals []core.Signal

	if prevFast <= prevSlow && currFast > currSlow {
		signals = append(signals, core.Signal{
			Symbol: ctx.Symbol,
			Action: core.ActionBuy,
			Reason: fmt.Sprintf("Golden cross: EMA%d (%.2f) crossed above EMA%d (%.2f)",
				s.params.FastEMA, currFast, s.params.SlowEMA, currSlow),
			GeneratedAt: ctx.Now,
			Metadata: map[string]any{
				"fast_ema": currFast,
				"slow_ema": currSlow,
			},
		})
	}

	if prevFast >= prevSlow && currFast < currSlow {
		signals = append(signals, core.Signal{
			Symbol: ctx.Symbol,
			Action: core.ActionSell,
			Reason: fmt.Sprintf("Death cross: EMA%d (%.2f) crossed below EMA%d (%.2f)",
				s.params.FastEMA, currFast, s.params.SlowEMA, currSlow),
			GeneratedAt: ctx.Now,
			Metadata: map[string]any{
				"fast_ema": currFast,
				"slow_ema": currSlow,
			},
		})
	}

	return signals, nil
}

package emacross

import (
	"testing"
	"time"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/strategy"
)

func barsFromCloses(closes []float64) []core.OHLCV {
	bars := make([]core.OHLCV, len(closes))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = core.OHLCV{Symbol: "TEST", Close: c, Time: start.AddDate(0, 0, i)}
	}
	return bars
}

func analyze(t *testing.T, closes []float64) []core.Signal {
	t.Helper()
	strat := New(strategy.Params{FastEMA: 2, SlowEMA: 3})
	signals, err := strat.Analyze(strategy.AnalysisContext{
		Symbol: "TEST",
		OHLCV:  barsFromCloses(closes),
		Now:    time.Now(),
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return signals
}

func TestGoldenCrossEmitsBuy(t *testing.T) {
	signals := analyze(t, []float64{10, 9, 8, 7, 20})

	if len(signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(signals))
	}
	if signals[0].Action != core.ActionBuy {
		t.Errorf("action = %s, want buy", signals[0].Action)
	}
}

func TestDeathCrossEmitsSell(t *testing.T) {
	signals := analyze(t, []float64{10, 11, 12, 13, 2})

	if len(signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(signals))
	}
	if signals[0].Action != core.ActionSell {
		t.Errorf("action = %s, want sell", signals[0].Action)
	}
}

func TestNoCrossNoSignal(t *testing.T) {
	if signals := analyze(t, []float64{10, 11, 12, 13, 14}); len(signals) != 0 {
		t.Errorf("signals = %v, want none in a steady trend", signals)
	}
}

func TestInsufficientDataIsSilent(t *testing.T) {
	if signals := analyze(t, []float64{10, 11}); signals != nil {
		t.Errorf("signals = %v, want nil with too little history", signals)
	}
}

func TestDefaultParams(t *testing.T) {
	strat := New(strategy.Params{})
	p := strat.Params()
	if p.FastEMA != 20 || p.SlowEMA != 50 || p.StopLoss != 2 || p.TakeProfit != 4 {
		t.Errorf("defaults = %+v", p)
	}

	// A slow period at or below the fast period is widened.
	p = New(strategy.Params{FastEMA: 10, SlowEMA: 5}).Params()
	if p.SlowEMA <= p.FastEMA {
		t.Errorf("slow %d should exceed fast %d", p.SlowEMA, p.FastEMA)
	}
}

package marketdata

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/newthinker/stratix/internal/core"
)

// Provider serves quotes, candles and news for a symbol.
type Provider interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time, interval string) ([]core.OHLCV, error)
	FetchQuote(ctx context.Context, symbol string) (core.Quote, error)
	FetchNews(ctx context.Context, symbol string) ([]core.NewsItem, error)
}

// Generator is a deterministic demo data source: a seeded random walk per
// symbol, stable across calls so backtests and charts line up.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a Generator using the real clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock is for deterministic timestamps in tests.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// seedFor derives a stable per-symbol seed so every symbol gets its own walk.
func seedFor(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64())
}

func startPriceFor(rnd *rand.Rand) float64 {
	return 40 + rnd.Float64()*460
}

// FetchHistory generates daily candles from start to end inclusive.
func (g *Generator) FetchHistory(_ context.Context, symbol string, start, end time.Time, interval string) ([]core.OHLCV, error) {
	if _, ok := Lookup(symbol); !ok {
		return nil, core.ErrSymbolNotFound
	}
	if end.Before(start) {
		return nil, core.ErrNoData
	}
	if interval == "" {
		interval = "1d"
	}

	rnd := rand.New(rand.NewSource(seedFor(symbol)))
	price := startPriceFor(rnd)

	var bars []core.OHLCV
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		volatility := 0.02 + rnd.Float64()*0.03
		trend := -1.0
		if rnd.Float64() > 0.48 {
			trend = 1.0
		}

		open := price
		close := price + price*volatility*trend
		high := math.Max(open, close) * (1 + rnd.Float64()*0.01)
		low := math.Min(open, close) * (1 - rnd.Float64()*0.01)
		volume := int64(1_000_000 + rnd.Intn(5_000_000))

		bars = append(bars, core.OHLCV{
			Symbol:   symbol,
			Interval: interval,
			Open:     round2(open),
			High:     round2(high),
			Low:      round2(low),
			Close:    round2(close),
			Volume:   volume,
			Time:     day,
		})
		price = close
	}
	return bars, nil
}

// FetchQuote derives the current quote from the tail of the symbol's walk.
func (g *Generator) FetchQuote(ctx context.Context, symbol string) (core.Quote, error) {
	now := g.now()
	bars, err := g.FetchHistory(ctx, symbol, now.AddDate(0, 0, -30), now, "1d")
	if err != nil {
		return core.Quote{}, err
	}
	if len(bars) < 2 {
		return core.Quote{}, core.ErrNoData
	}

	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]
	change := last.Close - prev.Close

	rnd := rand.New(rand.NewSource(seedFor(symbol)))
	marketCap := last.Close * float64(500_000_000+rnd.Intn(2_000_000_000))

	return core.Quote{
		Symbol:        symbol,
		Price:         last.Close,
		Change:        round2(change),
		ChangePercent: round2(change / prev.Close * 100),
		Volume:        last.Volume,
		MarketCap:     marketCap,
		High:          last.High,
		Low:           last.Low,
		Open:          last.Open,
		PreviousClose: prev.Close,
		Time:          now,
	}, nil
}

var newsTemplates = []struct {
	title     string
	sentiment core.Sentiment
}{
	{"%s beats quarterly earnings expectations", core.SentimentPositive},
	{"Analysts raise price target on %s", core.SentimentPositive},
	{"%s announces expanded share buyback program", core.SentimentPositive},
	{"%s faces regulatory scrutiny over new product line", core.SentimentNegative},
	{"Institutional investors trim %s positions", core.SentimentNegative},
	{"%s trading volume in line with sector averages", core.SentimentNeutral},
	{"%s schedules next earnings call", core.SentimentNeutral},
}

// FetchNews generates a small deterministic headline feed for the symbol.
func (g *Generator) FetchNews(_ context.Context, symbol string) ([]core.NewsItem, error) {
	ticker, ok := Lookup(symbol)
	if !ok {
		return nil, core.ErrSymbolNotFound
	}

	rnd := rand.New(rand.NewSource(seedFor(symbol) + 1))
	now := g.now()

	items := make([]core.NewsItem, 0, 5)
	for i := 0; i < 5; i++ {
		tpl := newsTemplates[rnd.Intn(len(newsTemplates))]
		items = append(items, core.NewsItem{
			ID:        fmt.Sprintf("%s-news-%d", symbol, i+1),
			Symbol:    symbol,
			Title:     fmt.Sprintf(tpl.title, ticker.Name),
			Source:    []string{"MarketWire", "TradeDesk Daily", "The Tape"}[rnd.Intn(3)],
			Timestamp: now.Add(-time.Duration(rnd.Intn(48)) * time.Hour),
			Sentiment: tpl.sentiment,
		})
	}
	return items, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

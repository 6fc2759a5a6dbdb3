package marketdata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/newthinker/stratix/internal/core"
)

var fixedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func testGenerator() *Generator {
	return NewGeneratorWithClock(func() time.Time { return fixedNow })
}

func TestFetchHistoryDeterministic(t *testing.T) {
	g := testGenerator()
	ctx := context.Background()
	start := fixedNow.AddDate(0, 0, -90)

	first, err := g.FetchHistory(ctx, "AAPL", start, fixedNow, "1d")
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(first) != 91 {
		t.Errorf("bars = %d, want 91", len(first))
	}

	second, _ := g.FetchHistory(ctx, "AAPL", start, fixedNow, "1d")
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("bar %d differs between runs", i)
		}
	}
}

func TestFetchHistoryBarShape(t *testing.T) {
	g := testGenerator()
	bars, err := g.FetchHistory(context.Background(), "NVDA", fixedNow.AddDate(0, 0, -30), fixedNow, "1d")
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}

	for i, b := range bars {
		if b.High < b.Open || b.High < b.Close {
			t.Errorf("bar %d: high %f below open/close", i, b.High)
		}
		if b.Low > b.Open || b.Low > b.Close {
			t.Errorf("bar %d: low %f above open/close", i, b.Low)
		}
		if b.Volume <= 0 {
			t.Errorf("bar %d: non-positive volume", i)
		}
		if i > 0 && b.Open != bars[i-1].Close {
			t.Errorf("bar %d: open %f does not continue previous close %f", i, b.Open, bars[i-1].Close)
		}
	}
}

func TestFetchHistoryUnknownSymbol(t *testing.T) {
	g := testGenerator()
	_, err := g.FetchHistory(context.Background(), "NOPE", fixedNow.AddDate(0, 0, -1), fixedNow, "1d")
	if !errors.Is(err, core.ErrSymbolNotFound) {
		t.Errorf("err = %v, want symbol not found", err)
	}
}

func TestFetchQuoteConsistentWithHistory(t *testing.T) {
	g := testGenerator()
	ctx := context.Background()

	quote, err := g.FetchQuote(ctx, "MSFT")
	if err != nil {
		t.Fatalf("fetch quote: %v", err)
	}
	if !quote.IsValid() {
		t.Fatalf("invalid quote: %+v", quote)
	}

	bars, _ := g.FetchHistory(ctx, "MSFT", fixedNow.AddDate(0, 0, -30), fixedNow, "1d")
	if quote.Price != bars[len(bars)-1].Close {
		t.Errorf("quote price %f != last close %f", quote.Price, bars[len(bars)-1].Close)
	}
	if quote.PreviousClose != bars[len(bars)-2].Close {
		t.Errorf("previous close mismatch")
	}
}

func TestFetchNews(t *testing.T) {
	g := testGenerator()
	items, err := g.FetchNews(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("fetch news: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("news items = %d, want 5", len(items))
	}
	for _, n := range items {
		if n.Symbol != "TSLA" || n.Title == "" || n.Source == "" {
			t.Errorf("malformed item: %+v", n)
		}
	}
}

// countingProvider counts upstream quote fetches.
type countingProvider struct {
	Provider
	calls atomic.Int64
}

func (p *countingProvider) FetchQuote(ctx context.Context, symbol string) (core.Quote, error) {
	p.calls.Add(1)
	return p.Provider.FetchQuote(ctx, symbol)
}

func TestCachedProviderServesFromCache(t *testing.T) {
	upstream := &countingProvider{Provider: testGenerator()}
	cached := NewCachedProvider(upstream, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := cached.FetchQuote(ctx, "AAPL"); err != nil {
			t.Fatalf("fetch quote: %v", err)
		}
	}

	if got := upstream.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestLookupAndSectors(t *testing.T) {
	if _, ok := Lookup("aapl"); !ok {
		t.Error("lookup should be case-insensitive")
	}
	if _, ok := Lookup("ZZZZ"); ok {
		t.Error("unknown symbol should not resolve")
	}
	if len(Sectors()) == 0 {
		t.Error("expected sectors")
	}
}

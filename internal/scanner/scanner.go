// Package scanner screens the ticker universe against basic filters plus
// level-gated advanced filters. Locked filters are skipped silently and
// reported back, never an error.
package scanner

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/gate"
	"github.com/newthinker/stratix/internal/marketdata"
	"github.com/newthinker/stratix/internal/profile"
)

// Request is a scan over the universe. Zero values disable a criterion.
type Request struct {
	Query        string   `json:"query"`
	Sector       string   `json:"sector"`
	MinPrice     float64  `json:"minPrice"`
	MaxPrice     float64  `json:"maxPrice"`
	MinMarketCap float64  `json:"minMarketCap"` // billions
	Advanced     []string `json:"advanced"`     // advanced filter names to apply
}

// LockedFilter reports an advanced filter the profile's level cannot use yet.
type LockedFilter struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	RequiredLevel int    `json:"requiredLevel"`
}

// Result is one matching symbol with its current quote.
type Result struct {
	Ticker core.Ticker `json:"ticker"`
	Quote  core.Quote  `json:"quote"`
}

// Response carries the matches plus which requested filters were locked.
type Response struct {
	Results []Result       `json:"results"`
	Locked  []LockedFilter `json:"locked"`
}

const historyDays = 90

// Scanner screens symbols using a market data provider.
type Scanner struct {
	provider marketdata.Provider
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Scanner.
func New(provider marketdata.Provider, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{provider: provider, logger: logger, now: time.Now}
}

// Scan evaluates the request for the given profile. Advanced filters the
// profile cannot unlock are collected into Response.Locked and skipped;
// unknown filter names are ignored.
func (s *Scanner) Scan(ctx context.Context, p *profile.Profile, req Request) (Response, error) {
	var active []AdvancedFilter
	var locked []LockedFilter

	for _, name := range req.Advanced {
		f, ok := filterByName(name)
		if !ok {
			continue
		}
		if !gate.Allowed(p, f.RequiredLevel) {
			locked = append(locked, LockedFilter{
				Name:          f.Name,
				Description:   f.Description,
				RequiredLevel: f.RequiredLevel,
			})
			continue
		}
		active = append(active, f)
	}

	resp := Response{Locked: locked}

	for _, ticker := range marketdata.Universe {
		if !matchesBasic(ticker, req) {
			continue
		}

		quote, err := s.provider.FetchQuote(ctx, ticker.Symbol)
		if err != nil {
			s.logger.Warn("quote fetch failed during scan",
				zap.String("symbol", ticker.Symbol), zap.Error(err))
			continue
		}
		if !matchesQuote(quote, req) {
			continue
		}

		if len(active) > 0 {
			now := s.now()
			bars, err := s.provider.FetchHistory(ctx, ticker.Symbol, now.AddDate(0, 0, -historyDays), now, "1d")
			if err != nil {
				continue
			}
			if !matchesAdvanced(bars, active) {
				continue
			}
		}

		resp.Results = append(resp.Results, Result{Ticker: ticker, Quote: quote})
	}

	return resp, nil
}

func matchesBasic(t core.Ticker, req Request) bool {
	if req.Query != "" {
		q := strings.ToLower(req.Query)
		if !strings.Contains(strings.ToLower(t.Symbol), q) &&
			!strings.Contains(strings.ToLower(t.Name), q) {
			return false
		}
	}
	if req.Sector != "" && req.Sector != "all" && t.Sector != req.Sector {
		return false
	}
	return true
}

func matchesQuote(q core.Quote, req Request) bool {
	if req.MinPrice > 0 && q.Price < req.MinPrice {
		return false
	}
	if req.MaxPrice > 0 && q.Price > req.MaxPrice {
		return false
	}
	if req.MinMarketCap > 0 && q.MarketCap < req.MinMarketCap*1e9 {
		return false
	}
	return true
}

func matchesAdvanced(bars []core.OHLCV, filters []AdvancedFilter) bool {
	for _, f := range filters {
		if !f.matches(bars) {
			return false
		}
	}
	return true
}

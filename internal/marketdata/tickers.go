package marketdata

import (
	"strings"

	"github.com/newthinker/stratix/internal/core"
)

// Universe is the demo ticker catalog handed to the scanner and dashboards.
var Universe = []core.Ticker{
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology"},
	{Symbol: "MSFT", Name: "Microsoft Corp.", Sector: "Technology"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Automotive"},
	{Symbol: "NVDA", Name: "NVIDIA Corp.", Sector: "Technology"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Technology"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial"},
}

// Lookup finds a ticker by symbol, case-insensitive.
func Lookup(symbol string) (core.Ticker, bool) {
	for _, t := range Universe {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return core.Ticker{}, false
}

// Sectors returns the distinct sectors of the universe, in catalog order.
func Sectors() []string {
	var sectors []string
	seen := map[string]bool{}
	for _, t := range Universe {
		if !seen[t.Sector] {
			seen[t.Sector] = true
			sectors = append(sectors, t.Sector)
		}
	}
	return sectors
}

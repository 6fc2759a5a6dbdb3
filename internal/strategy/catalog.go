package strategy

// CuratedStrategy is a catalog entry shown on the strategies page. The
// historical figures are marketing copy from product, not computed here.
type CuratedStrategy struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Risk        string  `json:"risk"`
	WinRate     float64 `json:"winRate"`
	ReturnRate  float64 `json:"returnRate"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	AssetClass  string  `json:"assetClass"`
	WhyItWorks  string  `json:"whyItWorks"`
	Params      Params  `json:"params"`
}

// Catalog returns the curated strategy presets.
func Catalog() []CuratedStrategy {
	return []CuratedStrategy{
		{
			ID:          "conservative-swing",
			Name:        "Conservative Swing Trader",
			Description: "Low-risk approach using moving averages and support/resistance levels.",
			Risk:        "Low",
			WinRate:     58,
			ReturnRate:  12.5,
			MaxDrawdown: 8,
			AssetClass:  "Stocks",
			WhyItWorks:  "This strategy capitalizes on market momentum while using tight stop losses. It works because markets tend to trend, and by following the trend with proper risk management, we capture steady gains over time.",
			Params:      Params{FastEMA: 20, SlowEMA: 50, StopLoss: 2, TakeProfit: 4},
		},
		{
			ID:          "momentum-breakout",
			Name:        "Momentum Breakout",
			Description: "High-reward strategy targeting price breakouts with volume confirmation.",
			Risk:        "High",
			WinRate:     42,
			ReturnRate:  35.2,
			MaxDrawdown: 22,
			AssetClass:  "Stocks",
			WhyItWorks:  "Breakouts with volume confirmation often lead to significant price movements. While the win rate is lower, the risk-reward ratio compensates by catching major moves.",
			Params:      Params{FastEMA: 10, SlowEMA: 30, StopLoss: 5, TakeProfit: 15},
		},
		{
			ID:          "dividend-harvester",
			Name:        "Dividend Harvester",
			Description: "Income-focused strategy targeting high-yield dividend stocks.",
			Risk:        "Low",
			WinRate:     65,
			ReturnRate:  8.3,
			MaxDrawdown: 6,
			AssetClass:  "Stocks",
			WhyItWorks:  "Dividend stocks tend to be more stable and provide consistent income. This strategy focuses on quality companies with sustainable payouts.",
			Params:      Params{FastEMA: 50, SlowEMA: 200, StopLoss: 3, TakeProfit: 6},
		},
		{
			ID:          "crypto-mean-reversion",
			Name:        "Crypto Mean Reversion",
			Description: "Capitalizes on crypto's tendency to return to mean prices after extremes.",
			Risk:        "Medium",
			WinRate:     52,
			ReturnRate:  28.7,
			MaxDrawdown: 18,
			AssetClass:  "Crypto",
			WhyItWorks:  "Crypto markets are highly volatile and often overshoot in both directions. Mean reversion strategies profit when prices normalize after extreme moves.",
			Params:      Params{FastEMA: 14, SlowEMA: 28, StopLoss: 8, TakeProfit: 12},
		},
		{
			ID:          "forex-scalper",
			Name:        "Forex Scalper",
			Description: "Quick entries and exits on major currency pairs using RSI divergence.",
			Risk:        "Medium",
			WinRate:     55,
			ReturnRate:  18.4,
			MaxDrawdown: 12,
			AssetClass:  "Forex",
			WhyItWorks:  "Forex markets have high liquidity and tight spreads. Scalping captures small, frequent gains that compound over time.",
			Params:      Params{FastEMA: 5, SlowEMA: 15, StopLoss: 1, TakeProfit: 2},
		},
	}
}

// CatalogEntry finds a curated strategy by ID.
func CatalogEntry(id string) (CuratedStrategy, bool) {
	for _, c := range Catalog() {
		if c.ID == id {
			return c, true
		}
	}
	return CuratedStrategy{}, false
}

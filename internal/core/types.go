package core

import "time"

// Quote represents a real-time price quote
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	MarketCap     float64   `json:"marketCap,omitempty"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previousClose"`
	Time          time.Time `json:"time"`
}

// IsValid checks if the quote has required fields
func (q Quote) IsValid() bool {
	return q.Symbol != "" && q.Price > 0
}

// OHLCV represents a candlestick/bar
type OHLCV struct {
	Symbol   string    `json:"symbol"`
	Interval string    `json:"interval"` // "1m", "1h", "1d"
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	Time     time.Time `json:"time"`
}

// Sentiment classifies a news item's tone
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// NewsItem represents a market news headline for a symbol
type NewsItem struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Sentiment Sentiment `json:"sentiment"`
	Summary   string    `json:"summary,omitempty"`
}

// Ticker is an entry in the tradable universe
type Ticker struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// Action represents a trading signal action
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Signal represents a trading signal from a strategy
type Signal struct {
	Symbol      string         `json:"symbol"`
	Action      Action         `json:"action"`
	Price       float64        `json:"price"` // Price at signal generation
	Reason      string         `json:"reason"`
	Strategy    string         `json:"strategy"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

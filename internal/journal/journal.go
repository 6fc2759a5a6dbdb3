// Package journal stores a user's trade history and derives behavioral
// analytics from the journal tags attached to each trade.
package journal

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/newthinker/stratix/internal/core"
)

// Trade is one journaled trade.
type Trade struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	EntryDate  time.Time `json:"entryDate"`
	ExitDate   time.Time `json:"exitDate"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	Size       float64   `json:"size,omitempty"`
	Commission float64   `json:"commission,omitempty"`
	PnL        float64   `json:"pnl"`
	PnLPercent float64   `json:"pnlPercent"`
	IsProfit   bool      `json:"isProfit"`
	JournalTag string    `json:"journalTag,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// destructiveTags are patterns the product warns about in analytics.
var destructiveTags = map[string]bool{
	"revenge-trade": true,
	"fomo":          true,
	"overtrading":   true,
	"no-stop":       true,
}

// Store keeps trades per user in memory.
type Store struct {
	mu     sync.RWMutex
	trades map[string][]Trade // keyed by user ID
}

// NewStore creates an empty journal store.
func NewStore() *Store {
	return &Store{trades: make(map[string][]Trade)}
}

// Add records a trade, assigning an ID and deriving pnl fields.
func (s *Store) Add(userID string, t Trade) Trade {
	t.ID = uuid.NewString()
	derive(&t)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades[userID] = append(s.trades[userID], t)
	return t
}

// List returns the user's trades, most recent exit first.
func (s *Store) List(userID string) []Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]Trade, len(s.trades[userID]))
	copy(trades, s.trades[userID])
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].ExitDate.After(trades[j].ExitDate)
	})
	return trades
}

// Get returns one trade by ID.
func (s *Store) Get(userID, tradeID string) (Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.trades[userID] {
		if t.ID == tradeID {
			return t, nil
		}
	}
	return Trade{}, core.ErrTradeNotFound
}

// Update replaces mutable fields of a trade and re-derives pnl.
func (s *Store) Update(userID string, updated Trade) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.trades[userID] {
		if t.ID == updated.ID {
			updated.ID = t.ID
			derive(&updated)
			s.trades[userID][i] = updated
			return updated, nil
		}
	}
	return Trade{}, core.ErrTradeNotFound
}

// Delete removes a trade.
func (s *Store) Delete(userID, tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades := s.trades[userID]
	for i, t := range trades {
		if t.ID == tradeID {
			s.trades[userID] = append(trades[:i], trades[i+1:]...)
			return nil
		}
	}
	return core.ErrTradeNotFound
}

// derive fills PnL, PnLPercent and IsProfit from prices and size.
func derive(t *Trade) {
	size := t.Size
	if size == 0 {
		size = 1
	}
	t.PnL = (t.ExitPrice-t.EntryPrice)*size - t.Commission
	if t.EntryPrice != 0 {
		t.PnLPercent = (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100
	}
	t.IsProfit = t.PnL > 0
}

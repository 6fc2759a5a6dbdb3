package journal

import (
	"math"
	"sort"
)

// BehavioralTag aggregates all trades sharing one journal tag.
type BehavioralTag struct {
	Tag           string  `json:"tag"`
	Count         int     `json:"count"`
	TotalPnL      float64 `json:"totalPnl"`
	AvgPnL        float64 `json:"avgPnl"`
	IsDestructive bool    `json:"isDestructive"`
}

// Summary is the headline journal statistics.
type Summary struct {
	TotalTrades int     `json:"totalTrades"`
	Winning     int     `json:"winning"`
	Losing      int     `json:"losing"`
	WinRate     float64 `json:"winRate"`
	TotalPnL    float64 `json:"totalPnl"`
	AvgPnL      float64 `json:"avgPnl"`
	BestTrade   float64 `json:"bestTrade"`
	WorstTrade  float64 `json:"worstTrade"`
}

// Analytics is what the journal page renders above the trade list.
type Analytics struct {
	Summary Summary         `json:"summary"`
	Tags    []BehavioralTag `json:"tags"`
}

// Analyze computes the behavioral breakdown for a user's journal.
func (s *Store) Analyze(userID string) Analytics {
	trades := s.List(userID)

	var a Analytics
	a.Summary.TotalTrades = len(trades)
	if len(trades) == 0 {
		return a
	}

	a.Summary.BestTrade = math.Inf(-1)
	a.Summary.WorstTrade = math.Inf(1)

	byTag := make(map[string]*BehavioralTag)
	for _, t := range trades {
		a.Summary.TotalPnL += t.PnL
		if t.IsProfit {
			a.Summary.Winning++
		} else {
			a.Summary.Losing++
		}
		a.Summary.BestTrade = math.Max(a.Summary.BestTrade, t.PnL)
		a.Summary.WorstTrade = math.Min(a.Summary.WorstTrade, t.PnL)

		if t.JournalTag == "" {
			continue
		}
		bt, ok := byTag[t.JournalTag]
		if !ok {
			bt = &BehavioralTag{
				Tag:           t.JournalTag,
				IsDestructive: destructiveTags[t.JournalTag],
			}
			byTag[t.JournalTag] = bt
		}
		bt.Count++
		bt.TotalPnL += t.PnL
	}

	a.Summary.WinRate = float64(a.Summary.Winning) / float64(len(trades))
	a.Summary.AvgPnL = a.Summary.TotalPnL / float64(len(trades))

	for _, bt := range byTag {
		bt.AvgPnL = bt.TotalPnL / float64(bt.Count)
		a.Tags = append(a.Tags, *bt)
	}
	sort.Slice(a.Tags, func(i, j int) bool {
		if a.Tags[i].Count != a.Tags[j].Count {
			return a.Tags[i].Count > a.Tags[j].Count
		}
		return a.Tags[i].Tag < a.Tags[j].Tag
	})
	return a
}

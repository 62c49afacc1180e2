package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Statistics summarizes the stored rounds. It is always derived, never stored.
type Statistics struct {
	Total      int     `json:"total"`
	PlayerWins int     `json:"player_wins"`
	BankerWins int     `json:"banker_wins"`
	PlayerRate float64 `json:"player_rate"`
	BankerRate float64 `json:"banker_rate"`
}

// ComputeStatistics counts winners over the full record collection.
func ComputeStatistics(records []ResultRecord) Statistics {
	stats := Statistics{Total: len(records)}
	for _, r := range records {
		switch r.Winner {
		case WinnerPlayer:
			stats.PlayerWins++
		case WinnerBanker:
			stats.BankerWins++
		}
	}
	if stats.Total == 0 {
		return stats
	}

	total := decimal.NewFromInt(int64(stats.Total))
	hundred := decimal.NewFromInt(100)
	stats.PlayerRate = decimal.NewFromInt(int64(stats.PlayerWins)).Mul(hundred).Div(total).InexactFloat64()
	stats.BankerRate = decimal.NewFromInt(int64(stats.BankerWins)).Mul(hundred).Div(total).InexactFloat64()
	return stats
}

// Summary renders the statistics as a short multi-line block.
func (s Statistics) Summary() string {
	return fmt.Sprintf("Total: %d rounds\nPlayer: %d (%s%%)\nBanker: %d (%s%%)",
		s.Total,
		s.PlayerWins, decimal.NewFromFloat(s.PlayerRate).StringFixed(1),
		s.BankerWins, decimal.NewFromFloat(s.BankerRate).StringFixed(1))
}

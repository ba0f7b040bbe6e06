package services

import "casino/internal/models"

// nextStreak advances the signed streak counter: a win extends a win run or
// restarts at 1 after losses; a loss deepens a loss run or restarts at -1
// after wins.
func nextStreak(current int64, won bool) int64 {
	if won {
		if current >= 0 {
			return current + 1
		}
		return 1
	}
	if current > 0 {
		return -1
	}
	return current - 1
}

// applyOutcome folds one settled play into the per-(user,game) aggregates.
// The longest streak is only replaced when the new run is strictly longer in
// magnitude, so breaking a streak never erases the record.
func applyOutcome(stats models.GameStats, bet, payout int64, won bool) models.GameStats {
	stats.TotalPlays++
	stats.TotalWagered += bet
	if won {
		stats.TotalWon += payout
		if payout > stats.BiggestWin {
			stats.BiggestWin = payout
		}
	} else {
		stats.TotalLost += bet
	}
	streak := nextStreak(stats.CurrentStreak, won)
	stats.CurrentStreak = streak
	if abs(streak) > abs(stats.LongestStreak) {
		stats.LongestStreak = streak
	}
	return stats
}

func abs(value int64) int64 {
	if value < 0 {
		return -value
	}
	return value
}

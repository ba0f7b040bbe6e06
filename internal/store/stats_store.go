package store

import (
	"context"
	"database/sql"
	"errors"

	"casino/internal/models"
)

type StatsStore struct {
	db DB
}

func NewStatsStore(db DB) *StatsStore {
	return &StatsStore{db: db}
}

// Get reads the per-(user,game) row inside a settlement. The row is created
// lazily on first play, so a missing row is reported through the found flag
// rather than as an error. Writes to this table only ever happen under the
// owning user's balance lock, which is what serializes them.
func (s *StatsStore) Get(ctx context.Context, tx Getter, userID, gameID string) (models.GameStats, bool, error) {
	var row models.GameStats
	err := tx.GetContext(ctx, &row, `
		SELECT user_id, game_id, total_plays, total_wagered, total_won, total_lost,
		       biggest_win, current_streak, longest_streak, last_played
		FROM game_statistics
		WHERE user_id = $1 AND game_id = $2
	`, userID, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameStats{}, false, nil
	}
	if err != nil {
		return models.GameStats{}, false, err
	}
	return row, true, nil
}

func (s *StatsStore) Insert(ctx context.Context, tx Execer, stats models.GameStats) error {
	query := `
		INSERT INTO game_statistics (user_id, game_id, total_plays, total_wagered, total_won,
		                             total_lost, biggest_win, current_streak, longest_streak, last_played)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err := tx.ExecContext(ctx, query,
		stats.UserID, stats.GameID, stats.TotalPlays, stats.TotalWagered, stats.TotalWon,
		stats.TotalLost, stats.BiggestWin, stats.CurrentStreak, stats.LongestStreak,
	)
	return err
}

func (s *StatsStore) Update(ctx context.Context, tx Execer, stats models.GameStats) error {
	query := `
		UPDATE game_statistics
		SET total_plays = $1, total_wagered = $2, total_won = $3, total_lost = $4,
		    biggest_win = $5, current_streak = $6, longest_streak = $7,
		    last_played = NOW(), updated_at = NOW()
		WHERE user_id = $8 AND game_id = $9
	`
	_, err := tx.ExecContext(ctx, query,
		stats.TotalPlays, stats.TotalWagered, stats.TotalWon, stats.TotalLost,
		stats.BiggestWin, stats.CurrentStreak, stats.LongestStreak,
		stats.UserID, stats.GameID,
	)
	return err
}

func (s *StatsStore) ListByUser(ctx context.Context, userID string) ([]models.GameStats, error) {
	var rows []models.GameStats
	err := s.db.SelectContext(ctx, &rows, `
		SELECT gs.user_id, gs.game_id, g.name AS game_name, gs.total_plays, gs.total_wagered,
		       gs.total_won, gs.total_lost, gs.biggest_win, gs.current_streak, gs.longest_streak,
		       gs.last_played
		FROM game_statistics gs
		JOIN games g ON g.id = gs.game_id
		WHERE gs.user_id = $1
		ORDER BY gs.last_played DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

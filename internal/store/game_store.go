package store

import (
	"context"

	"casino/internal/models"
)

type GameStore struct {
	db DB
}

func NewGameStore(db DB) *GameStore {
	return &GameStore{db: db}
}

type GameInput struct {
	ID             string
	Name           string
	Description    string
	Kind           string
	MinBet         int64
	MaxBet         int64
	WinProbability string
	WinMultiplier  string
}

func (s *GameStore) ListActive(ctx context.Context) ([]models.Game, error) {
	var rows []models.Game
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, kind, min_bet, max_bet, win_probability, win_multiplier,
		       active, total_plays, total_wagered, created_at
		FROM games
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetActive takes the read-only game snapshot a settlement works against, so
// concurrent administrative edits cannot change the bounds mid-settlement.
func (s *GameStore) GetActive(ctx context.Context, tx Getter, gameID string) (models.Game, error) {
	var row models.Game
	err := tx.GetContext(ctx, &row, `
		SELECT id, name, description, kind, min_bet, max_bet, win_probability, win_multiplier,
		       active, total_plays, total_wagered, created_at
		FROM games
		WHERE id = $1 AND active = TRUE
	`, gameID)
	return row, err
}

func (s *GameStore) BumpAggregate(ctx context.Context, tx Execer, gameID string, bet int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE games
		SET total_plays = total_plays + 1, total_wagered = total_wagered + $1
		WHERE id = $2
	`, bet, gameID)
	return err
}

func (s *GameStore) Create(ctx context.Context, tx Execer, input GameInput) error {
	query := `
		INSERT INTO games (id, name, description, kind, min_bet, max_bet, win_probability, win_multiplier, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.Name, input.Description, input.Kind,
		input.MinBet, input.MaxBet, input.WinProbability, input.WinMultiplier,
	)
	return err
}

func (s *GameStore) SetActive(ctx context.Context, tx Execer, gameID string, active bool) (int64, error) {
	res, err := tx.ExecContext(ctx, `UPDATE games SET active = $1 WHERE id = $2`, active, gameID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

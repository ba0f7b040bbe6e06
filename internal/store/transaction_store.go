package store

import (
	"context"

	"casino/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID          string
	UserID      string
	GameID      *string
	Type        string
	Amount      int64
	Description string
}

// Append writes one immutable audit record. There is deliberately no update
// or delete path on this table.
func (s *TransactionStore) Append(ctx context.Context, tx Execer, input TransactionInput) error {
	query := `
		INSERT INTO transactions (id, user_id, game_id, type, status, amount, description)
		VALUES ($1, $2, $3, $4, 'completed', $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.UserID, input.GameID, input.Type, input.Amount, input.Description,
	)
	return err
}

func (s *TransactionStore) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.user_id, t.game_id, g.name AS game_name, t.type, t.status,
		       t.amount, t.description, t.created_at
		FROM transactions t
		LEFT JOIN games g ON g.id = t.game_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT 50
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

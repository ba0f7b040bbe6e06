package store

import (
	"context"

	"casino/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

type UserProfile struct {
	ID               string `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	Username         string `db:"username" json:"username"`
	Email            string `db:"email" json:"email"`
	Balance          int64  `db:"balance" json:"balance"`
	CreatedAt        any    `db:"created_at" json:"created_at"`
	TotalDeposits    int64  `db:"total_deposits" json:"total_deposits"`
	TotalWithdrawals int64  `db:"total_withdrawals" json:"total_withdrawals"`
	TotalWinnings    int64  `db:"total_winnings" json:"total_winnings"`
	GamesPlayed      int64  `db:"games_played" json:"games_played"`
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, name, username, email, passwordHash string, balance int64) error {
	query := `
		INSERT INTO users (id, name, username, email, password_hash, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, id, name, username, email, passwordHash, balance)
	return err
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, username, email, password_hash, balance, is_admin, created_at
		FROM users
		WHERE id = $1
	`, userID)
	return row, err
}

// GetByLogin resolves a login handle that may be either a username or an
// email address.
func (s *UserStore) GetByLogin(ctx context.Context, login string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, username, email, password_hash, balance, is_admin, created_at
		FROM users
		WHERE username = $1 OR email = $1
	`, login)
	return row, err
}

func (s *UserStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var isAdmin bool
	err := s.db.GetContext(ctx, &isAdmin, `SELECT is_admin FROM users WHERE id = $1`, userID)
	return isAdmin, err
}

func (s *UserStore) GetProfile(ctx context.Context, userID string) (UserProfile, error) {
	var row UserProfile
	err := s.db.GetContext(ctx, &row, `
		SELECT u.id, u.name, u.username, u.email, u.balance, u.created_at,
		       COALESCE(SUM(CASE WHEN t.type = 'deposit' THEN t.amount ELSE 0 END), 0) AS total_deposits,
		       COALESCE(SUM(CASE WHEN t.type = 'withdrawal' THEN t.amount ELSE 0 END), 0) AS total_withdrawals,
		       COALESCE(SUM(CASE WHEN t.type = 'game_win' THEN t.amount ELSE 0 END), 0) AS total_winnings,
		       COUNT(CASE WHEN t.type IN ('game_win', 'game_loss') THEN 1 END) AS games_played
		FROM users u
		LEFT JOIN transactions t ON t.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id, u.name, u.username, u.email, u.balance, u.created_at
	`, userID)
	return row, err
}

// BalanceForUpdate reads the balance under an exclusive row lock. A second
// unit of work touching the same user blocks here until the first commits or
// rolls back; unrelated users never contend.
func (s *UserStore) BalanceForUpdate(ctx context.Context, tx Getter, userID string) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance, `
		SELECT balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID)
	return balance, err
}

// UpdateBalance is only valid inside a unit of work holding the row lock
// from BalanceForUpdate.
func (s *UserStore) UpdateBalance(ctx context.Context, tx Execer, userID string, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`, balance, userID)
	return err
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GameKindMultiplier = "multiplier"
	GameKindLadder     = "ladder"
)

const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
	TransactionGameWin    = "game_win"
	TransactionGameLoss   = "game_loss"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Balance      int64     `db:"balance" json:"balance"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Game is a catalog row. Monetary bounds are minor units; win_probability and
// win_multiplier stay decimal because they are the only fractional arithmetic
// in the system.
type Game struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description"`
	Kind           string          `db:"kind" json:"kind"`
	MinBet         int64           `db:"min_bet" json:"min_bet"`
	MaxBet         int64           `db:"max_bet" json:"max_bet"`
	WinProbability decimal.Decimal `db:"win_probability" json:"win_probability"`
	WinMultiplier  decimal.Decimal `db:"win_multiplier" json:"win_multiplier"`
	Active         bool            `db:"active" json:"active"`
	TotalPlays     int64           `db:"total_plays" json:"total_plays"`
	TotalWagered   int64           `db:"total_wagered" json:"total_wagered"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Transaction rows are append-only; amount is always positive with the sign
// implied by the type.
type Transaction struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	GameID      *string   `db:"game_id" json:"game_id,omitempty"`
	GameName    *string   `db:"game_name" json:"game_name,omitempty"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`
	Amount      int64     `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GameStats is the per-user-per-game aggregate row. CurrentStreak is signed:
// positive counts consecutive wins, negative consecutive losses.
type GameStats struct {
	UserID        string    `db:"user_id" json:"user_id"`
	GameID        string    `db:"game_id" json:"game_id"`
	GameName      string    `db:"game_name" json:"game_name,omitempty"`
	TotalPlays    int64     `db:"total_plays" json:"total_plays"`
	TotalWagered  int64     `db:"total_wagered" json:"total_wagered"`
	TotalWon      int64     `db:"total_won" json:"total_won"`
	TotalLost     int64     `db:"total_lost" json:"total_lost"`
	BiggestWin    int64     `db:"biggest_win" json:"biggest_win"`
	CurrentStreak int64     `db:"current_streak" json:"current_streak"`
	LongestStreak int64     `db:"longest_streak" json:"longest_streak"`
	LastPlayed    time.Time `db:"last_played" json:"last_played"`
}

package handlers

import (
	"context"

	"casino/internal/models"
	"casino/internal/services"
	"casino/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, name, username, email, passwordHash string, balance int64) error
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByLogin(ctx context.Context, login string) (models.User, error)
	GetProfile(ctx context.Context, userID string) (store.UserProfile, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type GameStore interface {
	ListActive(ctx context.Context) ([]models.Game, error)
	Create(ctx context.Context, tx store.Execer, input store.GameInput) error
	SetActive(ctx context.Context, tx store.Execer, gameID string, active bool) (int64, error)
}

type SessionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.SessionInput) error
	Delete(ctx context.Context, tokenHash string) error
}

type SettlementService interface {
	PlaceBet(ctx context.Context, req services.BetRequest) (services.BetResult, error)
	Deposit(ctx context.Context, userID string, amount int64) (int64, error)
	Withdraw(ctx context.Context, userID string, amount int64) (int64, error)
	Transactions(ctx context.Context, userID string) ([]models.Transaction, error)
	Statistics(ctx context.Context, userID string) ([]models.GameStats, error)
}

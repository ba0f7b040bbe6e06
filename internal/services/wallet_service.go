package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"casino/internal/models"
	"casino/internal/store"
)

// Deposit credits the balance inside the same locking discipline as a
// settlement, minus the outcome resolver. Amounts above the configured
// ceiling are rejected before the unit of work starts.
func (s *SettlementService) Deposit(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 || amount > s.depositCeiling {
		return 0, ErrInvalidAmount
	}
	var newBalance int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		balance, err := s.users.BalanceForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
		newBalance = balance + amount
		if err := s.users.UpdateBalance(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		return s.transactions.Append(ctx, tx, store.TransactionInput{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        models.TransactionDeposit,
			Amount:      amount,
			Description: "Account deposit",
		})
	})
	if err != nil {
		return 0, err
	}
	s.hub.BroadcastBalance(userID, newBalance)
	return newBalance, nil
}

func (s *SettlementService) Withdraw(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var newBalance int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		balance, err := s.users.BalanceForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
		if amount > balance {
			return ErrInsufficientFunds
		}
		newBalance = balance - amount
		if err := s.users.UpdateBalance(ctx, tx, userID, newBalance); err != nil {
			return err
		}
		return s.transactions.Append(ctx, tx, store.TransactionInput{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        models.TransactionWithdrawal,
			Amount:      amount,
			Description: "Account withdrawal",
		})
	})
	if err != nil {
		return 0, err
	}
	s.hub.BroadcastBalance(userID, newBalance)
	return newBalance, nil
}

// Transactions returns the most recent 50 ledger entries, newest first.
func (s *SettlementService) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.transactions.ListByUser(ctx, userID)
}

func (s *SettlementService) Statistics(ctx context.Context, userID string) ([]models.GameStats, error) {
	return s.stats.ListByUser(ctx, userID)
}

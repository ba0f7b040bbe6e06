package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"casino/internal/db"
	"casino/internal/models"
	"casino/internal/money"
	"casino/internal/outcome"
	"casino/internal/store"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrGameNotFound      = errors.New("game not found or inactive")
	ErrInvalidBet        = errors.New("bet outside game limits")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidParameter  = errors.New("invalid game parameter")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type UserStore interface {
	BalanceForUpdate(ctx context.Context, tx store.Getter, userID string) (int64, error)
	UpdateBalance(ctx context.Context, tx store.Execer, userID string, balance int64) error
}

type GameStore interface {
	GetActive(ctx context.Context, tx store.Getter, gameID string) (models.Game, error)
	BumpAggregate(ctx context.Context, tx store.Execer, gameID string, bet int64) error
}

type TransactionStore interface {
	Append(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
}

type StatsStore interface {
	Get(ctx context.Context, tx store.Getter, userID, gameID string) (models.GameStats, bool, error)
	Insert(ctx context.Context, tx store.Execer, stats models.GameStats) error
	Update(ctx context.Context, tx store.Execer, stats models.GameStats) error
	ListByUser(ctx context.Context, userID string) ([]models.GameStats, error)
}

type BalanceHub interface {
	BroadcastBalance(userID string, balance int64)
}

// SettlementService runs every balance-changing operation as one unit of
// work: lock the balance row, validate, resolve, write balance + transaction
// + statistics, commit. A failure at any point rolls the whole unit back, so
// partial settlement is never observable.
type SettlementService struct {
	txRunner       db.TxRunner
	users          UserStore
	games          GameStore
	transactions   TransactionStore
	stats          StatsStore
	hub            BalanceHub
	depositCeiling int64
	newSource      func() outcome.Source
}

func NewSettlementService(txRunner db.TxRunner, users UserStore, games GameStore, transactions TransactionStore, stats StatsStore, hub BalanceHub, depositCeiling int64, newSource func() outcome.Source) *SettlementService {
	if newSource == nil {
		newSource = outcome.NewSource
	}
	return &SettlementService{
		txRunner:       txRunner,
		users:          users,
		games:          games,
		transactions:   transactions,
		stats:          stats,
		hub:            hub,
		depositCeiling: depositCeiling,
		newSource:      newSource,
	}
}

type BetRequest struct {
	UserID      string
	GameID      string
	Amount      int64
	TargetLevel int // ladder games only
}

type BetResult struct {
	Won        bool
	BetAmount  int64
	WinAmount  int64
	NetAmount  int64
	NewBalance int64
	Message    string
	GameName   string
	Ladder     *outcome.LadderTrace
}

// PlaceBet settles one wager. Validation happens under the balance lock and
// before any random draw, so a rejected bet consumes no entropy and leaves
// no trace in the transaction log.
func (s *SettlementService) PlaceBet(ctx context.Context, req BetRequest) (BetResult, error) {
	var result BetResult
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		balance, err := s.users.BalanceForUpdate(ctx, tx, req.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
		game, err := s.games.GetActive(ctx, tx, req.GameID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrGameNotFound
			}
			return err
		}
		if req.Amount < game.MinBet || req.Amount > game.MaxBet {
			return ErrInvalidBet
		}
		if err := outcome.ValidateTarget(game, req.TargetLevel); err != nil {
			return ErrInvalidParameter
		}
		if req.Amount > balance {
			return ErrInsufficientFunds
		}

		resolved, err := outcome.Resolve(game, req.Amount, req.TargetLevel, s.newSource())
		if err != nil {
			return err
		}

		net := -req.Amount
		if resolved.Won {
			net = resolved.Payout - req.Amount
		}
		newBalance := balance + net
		if err := s.users.UpdateBalance(ctx, tx, req.UserID, newBalance); err != nil {
			return err
		}

		kind := models.TransactionGameLoss
		amount := req.Amount
		if resolved.Won {
			kind = models.TransactionGameWin
			amount = resolved.Payout
		}
		if err := s.transactions.Append(ctx, tx, store.TransactionInput{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			GameID:      &game.ID,
			Type:        kind,
			Amount:      amount,
			Description: betDescription(game.Name, req.Amount, resolved),
		}); err != nil {
			return err
		}

		if err := s.applyStatistics(ctx, tx, req.UserID, game.ID, req.Amount, resolved); err != nil {
			return err
		}
		if err := s.games.BumpAggregate(ctx, tx, game.ID, req.Amount); err != nil {
			return err
		}

		result = BetResult{
			Won:        resolved.Won,
			BetAmount:  req.Amount,
			WinAmount:  resolved.Payout,
			NetAmount:  net,
			NewBalance: newBalance,
			Message:    betMessage(resolved),
			GameName:   game.Name,
			Ladder:     resolved.Ladder,
		}
		return nil
	})
	if err != nil {
		return BetResult{}, err
	}
	s.hub.BroadcastBalance(req.UserID, result.NewBalance)
	return result, nil
}

func (s *SettlementService) applyStatistics(ctx context.Context, tx store.Tx, userID, gameID string, bet int64, resolved outcome.Result) error {
	stats, found, err := s.stats.Get(ctx, tx, userID, gameID)
	if err != nil {
		return err
	}
	if !found {
		stats = models.GameStats{UserID: userID, GameID: gameID}
	}
	stats = applyOutcome(stats, bet, resolved.Payout, resolved.Won)
	if found {
		return s.stats.Update(ctx, tx, stats)
	}
	return s.stats.Insert(ctx, tx, stats)
}

func betDescription(gameName string, bet int64, resolved outcome.Result) string {
	verb := "Lost"
	if resolved.Won {
		verb = "Won"
	}
	if resolved.Ladder != nil {
		return fmt.Sprintf("%s %s - bet %s, levels %d/%d",
			verb, gameName, money.FormatMinor(bet), resolved.Ladder.LevelsCrossed, resolved.Ladder.TargetLevel)
	}
	return fmt.Sprintf("%s %s - bet %s", verb, gameName, money.FormatMinor(bet))
}

func betMessage(resolved outcome.Result) string {
	if resolved.Ladder != nil {
		if resolved.Won {
			return fmt.Sprintf("You crossed %d levels!", resolved.Ladder.LevelsCrossed)
		}
		return fmt.Sprintf("Crashed at level %d", resolved.Ladder.LevelsCrossed)
	}
	if resolved.Won {
		return "You won!"
	}
	return "You lost!"
}

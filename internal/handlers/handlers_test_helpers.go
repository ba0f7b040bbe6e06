package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"casino/internal/auth"
	"casino/internal/config"
	"casino/internal/middleware"
	"casino/internal/models"
	"casino/internal/services"
	"casino/internal/store"
	"casino/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn     func(ctx context.Context, tx store.Execer, id, name, username, email, passwordHash string, balance int64) error
	getByIDFn    func(ctx context.Context, userID string) (models.User, error)
	getByLoginFn func(ctx context.Context, login string) (models.User, error)
	getProfileFn func(ctx context.Context, userID string) (store.UserProfile, error)
	isAdminFn    func(ctx context.Context, userID string) (bool, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, name, username, email, passwordHash string, balance int64) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, name, username, email, passwordHash, balance)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) GetByLogin(ctx context.Context, login string) (models.User, error) {
	if s.getByLoginFn == nil {
		return models.User{}, nil
	}
	return s.getByLoginFn(ctx, login)
}

func (s stubUserStore) GetProfile(ctx context.Context, userID string) (store.UserProfile, error) {
	if s.getProfileFn == nil {
		return store.UserProfile{}, nil
	}
	return s.getProfileFn(ctx, userID)
}

func (s stubUserStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if s.isAdminFn == nil {
		return false, nil
	}
	return s.isAdminFn(ctx, userID)
}

type stubGameStore struct {
	listActiveFn func(ctx context.Context) ([]models.Game, error)
	createFn     func(ctx context.Context, tx store.Execer, input store.GameInput) error
	setActiveFn  func(ctx context.Context, tx store.Execer, gameID string, active bool) (int64, error)
}

func (s stubGameStore) ListActive(ctx context.Context) ([]models.Game, error) {
	if s.listActiveFn == nil {
		return nil, nil
	}
	return s.listActiveFn(ctx)
}

func (s stubGameStore) Create(ctx context.Context, tx store.Execer, input store.GameInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubGameStore) SetActive(ctx context.Context, tx store.Execer, gameID string, active bool) (int64, error) {
	if s.setActiveFn == nil {
		return 1, nil
	}
	return s.setActiveFn(ctx, tx, gameID, active)
}

type stubSessionStore struct {
	createFn func(ctx context.Context, tx store.Execer, input store.SessionInput) error
	deleteFn func(ctx context.Context, tokenHash string) error
}

func (s stubSessionStore) Create(ctx context.Context, tx store.Execer, input store.SessionInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubSessionStore) Delete(ctx context.Context, tokenHash string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tokenHash)
}

type stubService struct {
	placeBetFn     func(ctx context.Context, req services.BetRequest) (services.BetResult, error)
	depositFn      func(ctx context.Context, userID string, amount int64) (int64, error)
	withdrawFn     func(ctx context.Context, userID string, amount int64) (int64, error)
	transactionsFn func(ctx context.Context, userID string) ([]models.Transaction, error)
	statisticsFn   func(ctx context.Context, userID string) ([]models.GameStats, error)
}

func (s stubService) PlaceBet(ctx context.Context, req services.BetRequest) (services.BetResult, error) {
	if s.placeBetFn == nil {
		return services.BetResult{}, nil
	}
	return s.placeBetFn(ctx, req)
}

func (s stubService) Deposit(ctx context.Context, userID string, amount int64) (int64, error) {
	if s.depositFn == nil {
		return 0, nil
	}
	return s.depositFn(ctx, userID, amount)
}

func (s stubService) Withdraw(ctx context.Context, userID string, amount int64) (int64, error) {
	if s.withdrawFn == nil {
		return 0, nil
	}
	return s.withdrawFn(ctx, userID, amount)
}

func (s stubService) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	if s.transactionsFn == nil {
		return nil, nil
	}
	return s.transactionsFn(ctx, userID)
}

func (s stubService) Statistics(ctx context.Context, userID string) ([]models.GameStats, error) {
	if s.statisticsFn == nil {
		return nil, nil
	}
	return s.statisticsFn(ctx, userID)
}

func newTestHandler(txRunner fakeTxRunner, users UserStore, games GameStore, sessions SessionStore, service SettlementService) *Handler {
	cfg := config.Config{
		AppEnv:              "test",
		Port:                "0",
		JWTSecret:           "secret",
		TokenTTL:            time.Minute,
		AllowedOrigins:      "*",
		DepositCeilingMinor: 1000000,
	}
	return New(txRunner, cfg, users, games, sessions, service, websocket.NewHub())
}

func serveAuthed(t *testing.T, handler http.HandlerFunc, req *http.Request, userID string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}

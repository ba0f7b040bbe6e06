package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"casino/internal/store"

	"github.com/go-chi/chi/v5"
)

func TestCreateGameSuccess(t *testing.T) {
	var created store.GameInput
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{
		createFn: func(_ context.Context, _ store.Execer, input store.GameInput) error {
			created = input
			return nil
		},
	}, stubSessionStore{}, stubService{})

	body := []byte(`{"name":"Lucky Spin","kind":"multiplier","min_bet":"1.00","max_bet":"1000.00","win_probability":"0.3","win_multiplier":"1.5"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/games", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateGame(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if created.Name != "Lucky Spin" || created.MinBet != 100 || created.MaxBet != 100000 {
		t.Fatalf("unexpected input: %#v", created)
	}
	if created.WinProbability != "0.3" || created.WinMultiplier != "1.5" {
		t.Fatalf("unexpected odds: %#v", created)
	}
}

func TestCreateGameRejectsBadProbability(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{
		createFn: func(context.Context, store.Execer, store.GameInput) error {
			t.Fatal("store should not be called")
			return nil
		},
	}, stubSessionStore{}, stubService{})

	body := []byte(`{"name":"Bad Odds","kind":"multiplier","min_bet":"1.00","max_bet":"10.00","win_probability":"1.5","win_multiplier":"2.0"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/games", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateGame(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateGameRejectsInvertedBounds(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{})

	body := []byte(`{"name":"Backwards","kind":"multiplier","min_bet":"10.00","max_bet":"1.00","win_probability":"0.5","win_multiplier":"2.0"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/games", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateGame(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateGameRejectsUnknownKind(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{})

	body := []byte(`{"name":"Mystery","kind":"roulette","min_bet":"1.00","max_bet":"10.00","win_probability":"0.5","win_multiplier":"2.0"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/games", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateGame(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSetGameActive(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{
		setActiveFn: func(_ context.Context, _ store.Execer, gameID string, active bool) (int64, error) {
			if gameID != "game-1" || active {
				t.Fatalf("unexpected args: %s %v", gameID, active)
			}
			return 1, nil
		},
	}, stubSessionStore{}, stubService{})

	body := []byte(`{"active":false}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/games/game-1/active", bytes.NewReader(body))
	req = withURLParam(req, "id", "game-1")
	rr := httptest.NewRecorder()
	handler.SetGameActive(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestSetGameActiveUnknownGame(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{
		setActiveFn: func(context.Context, store.Execer, string, bool) (int64, error) {
			return 0, nil
		},
	}, stubSessionStore{}, stubService{})

	body := []byte(`{"active":true}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/games/missing/active", bytes.NewReader(body))
	req = withURLParam(req, "id", "missing")
	rr := httptest.NewRecorder()
	handler.SetGameActive(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

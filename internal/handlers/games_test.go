package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"casino/internal/models"
	"casino/internal/outcome"
	"casino/internal/services"
)

func TestListGames(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{
		listActiveFn: func(context.Context) ([]models.Game, error) {
			return []models.Game{{ID: "game-1", Name: "Lucky Spin", Kind: models.GameKindMultiplier, MinBet: 100, MaxBet: 100000}}, nil
		},
	}, stubSessionStore{}, stubService{})

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	rr := serveAuthed(t, handler.ListGames, req, "user-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 1 || payload[0]["min_bet"] != "1.00" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestPlaceBetSuccess(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{
		placeBetFn: func(_ context.Context, req services.BetRequest) (services.BetResult, error) {
			if req.UserID != "user-1" || req.GameID != "game-1" || req.Amount != 1000 {
				t.Fatalf("unexpected request: %#v", req)
			}
			return services.BetResult{
				Won: true, BetAmount: 1000, WinAmount: 1500, NetAmount: 500,
				NewBalance: 10500, Message: "You won!", GameName: "Lucky Spin",
			}, nil
		},
	})

	body := []byte(`{"game_id":"game-1","bet_amount":"10.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/games/play", bytes.NewReader(body))
	rr := serveAuthed(t, handler.PlaceBet, req, "user-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["won"] != true || payload["new_balance"] != "105.00" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if _, present := payload["levels_crossed"]; present {
		t.Fatalf("ladder fields should be absent: %#v", payload)
	}
}

func TestPlaceBetLadderPayload(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{
		placeBetFn: func(_ context.Context, req services.BetRequest) (services.BetResult, error) {
			if req.TargetLevel != 5 {
				t.Fatalf("unexpected target level: %d", req.TargetLevel)
			}
			return services.BetResult{
				Won: false, BetAmount: 1000, NetAmount: -1000, NewBalance: 9000,
				Message: "Crashed at level 3", GameName: "Car Race",
				Ladder: &outcome.LadderTrace{TargetLevel: 5, LevelsCrossed: 3},
			}, nil
		},
	})

	body := []byte(`{"game_id":"game-1","bet_amount":"10.00","target_level":5}`)
	req := httptest.NewRequest(http.MethodPost, "/games/play", bytes.NewReader(body))
	rr := serveAuthed(t, handler.PlaceBet, req, "user-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["levels_crossed"] != float64(3) || payload["target_level"] != float64(5) {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestPlaceBetErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"game not found", services.ErrGameNotFound, http.StatusNotFound},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"invalid bet", services.ErrInvalidBet, http.StatusBadRequest},
		{"invalid parameter", services.ErrInvalidParameter, http.StatusBadRequest},
		{"insufficient funds", services.ErrInsufficientFunds, http.StatusBadRequest},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{
				placeBetFn: func(context.Context, services.BetRequest) (services.BetResult, error) {
					return services.BetResult{}, tc.err
				},
			})
			body := []byte(`{"game_id":"game-1","bet_amount":"10.00"}`)
			req := httptest.NewRequest(http.MethodPost, "/games/play", bytes.NewReader(body))
			rr := serveAuthed(t, handler.PlaceBet, req, "user-1")
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestPlaceBetMalformedAmount(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{
		placeBetFn: func(context.Context, services.BetRequest) (services.BetResult, error) {
			t.Fatal("service should not be called")
			return services.BetResult{}, nil
		},
	})
	body := []byte(`{"game_id":"game-1","bet_amount":"10.123"}`)
	req := httptest.NewRequest(http.MethodPost, "/games/play", bytes.NewReader(body))
	rr := serveAuthed(t, handler.PlaceBet, req, "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPlaceBetMissingGameID(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubGameStore{}, stubSessionStore{}, stubService{})
	body := []byte(`{"bet_amount":"10.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/games/play", bytes.NewReader(body))
	rr := serveAuthed(t, handler.PlaceBet, req, "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

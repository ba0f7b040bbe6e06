package handlers

import (
	"encoding/json"
	"net/http"

	"casino/internal/models"
	"casino/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type createGameRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Kind           string `json:"kind"`
	MinBet         string `json:"min_bet"`
	MaxBet         string `json:"max_bet"`
	WinProbability string `json:"win_probability"`
	WinMultiplier  string `json:"win_multiplier"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	kind := kindOrDefault(req.Kind)
	if kind != models.GameKindMultiplier && kind != models.GameKindLadder {
		respondError(w, http.StatusBadRequest, "unknown game kind")
		return
	}
	minBet, err := parseAmountMinor(req.MinBet)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid min_bet")
		return
	}
	maxBet, err := parseAmountMinor(req.MaxBet)
	if err != nil || maxBet < minBet {
		respondError(w, http.StatusBadRequest, "invalid max_bet")
		return
	}
	probability, err := decimal.NewFromString(req.WinProbability)
	if err != nil || probability.IsNegative() || probability.GreaterThan(decimal.NewFromInt(1)) {
		respondError(w, http.StatusBadRequest, "invalid win_probability")
		return
	}
	multiplier, err := decimal.NewFromString(req.WinMultiplier)
	if err != nil || multiplier.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid win_multiplier")
		return
	}
	gameID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.games.Create(r.Context(), tx, store.GameInput{
			ID:             gameID,
			Name:           req.Name,
			Description:    req.Description,
			Kind:           kind,
			MinBet:         minBet,
			MaxBet:         maxBet,
			WinProbability: probability.String(),
			WinMultiplier:  multiplier.String(),
		})
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create game")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": gameID})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) SetGameActive(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	var updated int64
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		rows, err := h.games.SetActive(r.Context(), tx, gameID, req.Active)
		updated = rows
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update game")
		return
	}
	if updated == 0 {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": gameID, "active": req.Active})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"casino/internal/middleware"
	"casino/internal/models"
	"casino/internal/services"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListActive(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load games")
		return
	}
	normalized := make([]map[string]any, 0, len(games))
	for _, game := range games {
		normalized = append(normalized, map[string]any{
			"id":             game.ID,
			"name":           game.Name,
			"description":    game.Description,
			"kind":           game.Kind,
			"min_bet":        formatMinor(game.MinBet),
			"max_bet":        formatMinor(game.MaxBet),
			"win_multiplier": game.WinMultiplier.String(),
			"total_plays":    game.TotalPlays,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

type placeBetRequest struct {
	GameID      string `json:"game_id"`
	BetAmount   string `json:"bet_amount"`
	TargetLevel *int   `json:"target_level,omitempty"`
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.GameID == "" {
		respondError(w, http.StatusBadRequest, "game_id is required")
		return
	}
	amount, err := parseAmountMinor(req.BetAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_bet")
		return
	}
	betReq := services.BetRequest{UserID: userID, GameID: req.GameID, Amount: amount}
	if req.TargetLevel != nil {
		betReq.TargetLevel = *req.TargetLevel
	}
	result, err := h.service.PlaceBet(r.Context(), betReq)
	if err != nil {
		switch err {
		case services.ErrUserNotFound, services.ErrGameNotFound:
			respondError(w, http.StatusNotFound, "not_found")
		case services.ErrInvalidBet:
			respondError(w, http.StatusBadRequest, "invalid_bet")
		case services.ErrInvalidParameter:
			respondError(w, http.StatusBadRequest, "invalid_parameter")
		case services.ErrInsufficientFunds:
			respondError(w, http.StatusBadRequest, "insufficient_funds")
		default:
			respondError(w, http.StatusInternalServerError, "bet_failed")
		}
		return
	}
	payload := map[string]any{
		"won":         result.Won,
		"game":        result.GameName,
		"bet_amount":  formatMinor(result.BetAmount),
		"win_amount":  formatMinor(result.WinAmount),
		"net_amount":  formatMinor(result.NetAmount),
		"new_balance": formatMinor(result.NewBalance),
		"message":     result.Message,
	}
	if result.Ladder != nil {
		payload["levels_crossed"] = result.Ladder.LevelsCrossed
		payload["target_level"] = result.Ladder.TargetLevel
	}
	respondJSON(w, http.StatusOK, payload)
}

func kindOrDefault(kind string) string {
	if kind == "" {
		return models.GameKindMultiplier
	}
	return kind
}

package handlers

import (
	"encoding/json"
	"net/http"

	"casino/internal/auth"
	"casino/internal/middleware"
	"casino/internal/services"
	"casino/internal/websocket"
)

type amountRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	newBalance, err := h.service.Deposit(r.Context(), userID, amount)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, "invalid_amount")
		case services.ErrUserNotFound:
			respondError(w, http.StatusNotFound, "not_found")
		default:
			respondError(w, http.StatusInternalServerError, "deposit_failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Deposit successful",
		"new_balance": formatMinor(newBalance),
	})
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	newBalance, err := h.service.Withdraw(r.Context(), userID, amount)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, "invalid_amount")
		case services.ErrInsufficientFunds:
			respondError(w, http.StatusBadRequest, "insufficient_funds")
		case services.ErrUserNotFound:
			respondError(w, http.StatusNotFound, "not_found")
		default:
			respondError(w, http.StatusInternalServerError, "withdrawal_failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Withdrawal successful",
		"new_balance": formatMinor(newBalance),
	})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactions, err := h.service.Transactions(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	normalized := make([]map[string]any, 0, len(transactions))
	for _, txn := range transactions {
		row := map[string]any{
			"id":          txn.ID,
			"type":        txn.Type,
			"status":      txn.Status,
			"amount":      formatMinor(txn.Amount),
			"description": txn.Description,
			"created_at":  txn.CreatedAt,
		}
		if txn.GameName != nil {
			row["game_name"] = *txn.GameName
		}
		normalized = append(normalized, row)
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) GameStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := h.service.Statistics(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load statistics")
		return
	}
	normalized := make([]map[string]any, 0, len(stats))
	for _, row := range stats {
		normalized = append(normalized, map[string]any{
			"game_id":        row.GameID,
			"game_name":      row.GameName,
			"total_plays":    row.TotalPlays,
			"total_wagered":  formatMinor(row.TotalWagered),
			"total_won":      formatMinor(row.TotalWon),
			"total_lost":     formatMinor(row.TotalLost),
			"biggest_win":    formatMinor(row.BiggestWin),
			"current_streak": row.CurrentStreak,
			"longest_streak": row.LongestStreak,
			"last_played":    row.LastPlayed,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":                profile.ID,
		"name":              profile.Name,
		"username":          profile.Username,
		"email":             profile.Email,
		"balance":           formatMinor(profile.Balance),
		"total_deposits":    formatMinor(profile.TotalDeposits),
		"total_withdrawals": formatMinor(profile.TotalWithdrawals),
		"total_winnings":    formatMinor(profile.TotalWinnings),
		"games_played":      profile.GamesPlayed,
		"created_at":        profile.CreatedAt,
	})
}

// WSBalance upgrades to a websocket that receives the user's balance after
// every committed settlement. The token rides in the query string because
// browsers cannot set headers on websocket dials.
func (h *Handler) WSBalance(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"casino/internal/money"
)

var timeNow = time.Now

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func formatMinor(value int64) string {
	return money.FormatMinor(value)
}

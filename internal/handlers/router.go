package handlers

import (
	"net/http"

	"casino/internal/config"
	"casino/internal/db"
	"casino/internal/middleware"
	"casino/internal/websocket"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner db.TxRunner
	cfg      config.Config
	users    UserStore
	games    GameStore
	sessions SessionStore
	service  SettlementService
	hub      *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, games GameStore, sessions SessionStore, service SettlementService, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner: txRunner,
		cfg:      cfg,
		users:    users,
		games:    games,
		sessions: sessions,
		service:  service,
		hub:      hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/games", h.ListGames)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/games/play", h.PlaceBet)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/wallet/deposit", h.Deposit)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/wallet/withdraw", h.Withdraw)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/wallet/transactions", h.ListTransactions)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/wallet/statistics", h.GameStatistics)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/users/profile", h.Profile)
	router.Get("/ws/balance", h.WSBalance)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Use(middleware.RequireAdmin(h.users))
		r.Post("/games", h.CreateGame)
		r.Put("/games/{id}/active", h.SetGameActive)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

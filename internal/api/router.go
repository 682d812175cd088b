package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/benched/internal/api/handler"
	"github.com/mcoot/benched/internal/api/middleware"
	"github.com/mcoot/benched/internal/api/sse"
	"github.com/mcoot/benched/internal/dependencies/random"
	"github.com/mcoot/benched/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	Roster *roster.Store
	// Random picks default colors for new players
	Random random.Random
	// Hub serves live roster events (optional)
	Hub *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	rosterHandler := handler.NewRosterHandler(cfg.Roster, cfg.Random, cfg.Hub, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Roster routes
	api.HandleFunc("/roster", rosterHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/roster/teams", rosterHandler.Teams).Methods(http.MethodGet)
	api.HandleFunc("/roster/history", rosterHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/roster/events", rosterHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/roster/team-size", rosterHandler.SetTeamSize).Methods(http.MethodPut)
	api.HandleFunc("/roster/activate-all", rosterHandler.ActivateAll).Methods(http.MethodPost)
	api.HandleFunc("/roster/bench-all", rosterHandler.BenchAll).Methods(http.MethodPost)
	api.HandleFunc("/roster/undo", rosterHandler.Undo).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/players", rosterHandler.CreatePlayer).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", rosterHandler.GetPlayer).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", rosterHandler.UpdatePlayer).Methods(http.MethodPut)
	api.HandleFunc("/players/{id}", rosterHandler.DeletePlayer).Methods(http.MethodDelete)
	api.HandleFunc("/players/{id}/toggle", rosterHandler.TogglePlayer).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}/quick-remove", rosterHandler.QuickRemovePlayer).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.Roster)).Methods(http.MethodGet)

	return r
}

// healthHandler reports ok, or degraded while roster writes are failing
func healthHandler(store *roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if store.LastPersistError() != nil {
			status = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"` + status + `"}`))
	}
}

// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dvera/barrioliga/internal/api"
	"github.com/dvera/barrioliga/internal/api/admin"
	"github.com/dvera/barrioliga/internal/api/auth"
	"github.com/dvera/barrioliga/internal/api/championship"
	"github.com/dvera/barrioliga/internal/api/events"
	"github.com/dvera/barrioliga/internal/api/matches"
	"github.com/dvera/barrioliga/internal/api/news"
	"github.com/dvera/barrioliga/internal/api/players"
	"github.com/dvera/barrioliga/internal/api/standings"
	"github.com/dvera/barrioliga/internal/api/statistics"
	"github.com/dvera/barrioliga/internal/api/teams"
	"github.com/dvera/barrioliga/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithAuth,
		api.WithCORS,
		api.WithRequestID,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// adminOnly wraps a handler func with the admin principal guard. Reads stay
// public; every write goes through here.
func adminOnly(h http.HandlerFunc) http.Handler {
	return api.RequireAdmin(h)
}

// readOrAdmin serves GET and OPTIONS to everyone and everything else only to
// the authenticated administrator.
func readOrAdmin(h http.HandlerFunc) http.Handler {
	guarded := api.RequireAdmin(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodOptions {
			h(w, r)
			return
		}
		guarded.ServeHTTP(w, r)
	})
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("/api/v1/auth/login", auth.HandleLogin)

	// Teams
	mux.Handle("/api/v1/teams", readOrAdmin(teams.HandleTeams))
	mux.Handle("/api/v1/teams/", readOrAdmin(teams.HandleTeamByID))

	// Players
	mux.Handle("/api/v1/players", readOrAdmin(players.HandlePlayers))

	// Matches and in-match events
	mux.Handle("/api/v1/matches", readOrAdmin(matches.HandleMatches))
	mux.Handle("/api/v1/matches/", readOrAdmin(matches.HandleMatchByID))
	mux.Handle("/api/v1/events/", adminOnly(events.HandleDeleteEvent))

	// Public projections
	mux.HandleFunc("/api/v1/standings", standings.HandleStandings)
	mux.HandleFunc("/api/v1/statistics", statistics.HandleStatistics)

	// News
	mux.Handle("/api/v1/news", readOrAdmin(news.HandleNews))
	mux.Handle("/api/v1/news/", readOrAdmin(news.HandleNewsByID))

	// Championship
	mux.Handle("/api/v1/championship", readOrAdmin(championship.HandleChampionship))

	// Admin maintenance
	mux.Handle("/api/v1/admin/repair", adminOnly(admin.HandleRepair))
}

// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

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
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/ratelimit"
	"github.com/dvera/barrioliga/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	loginLimiter := ratelimit.New(nil)
	auth.Init(cfg, loginLimiter)

	season := cfg.League.Season
	teams.InitHandlers(database, season)
	players.InitHandlers(database, season)
	matches.InitHandlers(database, season)
	events.InitHandlers(database, season)
	standings.InitHandlers(database, season)
	statistics.InitHandlers(database)
	news.InitHandlers(database)
	championship.InitHandlers(database)
	admin.InitHandlers(database, season)

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if err := scheduler.RegisterRepairJob(database, season, cfg.League.RepairCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register repair job")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	server := newServer(cfg)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Int("port", cfg.App.Port).
			Str("season", season).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown error")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

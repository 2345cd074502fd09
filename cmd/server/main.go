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

	"github.com/acereserve/acereserve/internal/api"
	"github.com/acereserve/acereserve/internal/config"
	"github.com/acereserve/acereserve/internal/db"
	"github.com/acereserve/acereserve/internal/reservations"
	"github.com/acereserve/acereserve/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func loadConfig() (*config.Config, error) {
	configPath := flag.String("config", "", "path to the yaml configuration file")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = os.Getenv("ACERESERVE_CONFIG")
	}
	if path == "" {
		log.Warn().Msg("No config file given, using defaults")
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.New(cfg.Database.Filename)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	service := reservations.NewService(database, cfg.Pricing, cfg.Loyalty, cfg.Booking.LightingStartHour)
	server := newServer(cfg, api.New(database, service).Handler())

	sched, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := sched.RegisterCompletionJob(database, cfg.Booking.CompletionCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register completion job")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		sched.Start()
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
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

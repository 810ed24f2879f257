// Package main provides the entrypoint for the station status refresh worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/middleware"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/database"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/inventory"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "evswap-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting station status worker")

	// The worker also exposes a health endpoint for the container platform.
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	stationRepo := station.NewPostgresRepository(pool)
	inventoryRepo := inventory.NewPostgresRepository(pool)
	stationService := station.NewService(stationRepo, inventoryRepo)

	sweepMetrics, err := middleware.NewSweepMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize sweep metrics")
	}

	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:   worker.SweepConfigFromEnv(),
		Logger:   log,
		Stations: stationService,
		Metrics:  sweepMetrics,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	go job.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

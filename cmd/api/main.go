// Package main provides the entrypoint for the swap station API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/middleware"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/auth"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/booking"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/database"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/inventory"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/swaptx"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/telemetry"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/vehicle"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "evswap-api"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting swap station API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     os.Getenv("JWT_ISSUER"),
		Audience:   os.Getenv("JWT_AUDIENCE"),
	})

	// Initialize repositories
	stationRepo := station.NewPostgresRepository(pool)
	inventoryRepo := inventory.NewPostgresRepository(pool)
	batteryRepo := battery.NewPostgresRepository(pool)
	vehicleRepo := vehicle.NewPostgresRepository(pool)
	planRepo := plan.NewPostgresRepository(pool)
	bookingRepo := booking.NewPostgresRepository(pool)
	txRepo := swaptx.NewPostgresRepository(pool)

	// Initialize services
	stationService := station.NewService(stationRepo, inventoryRepo)
	inventoryService := inventory.NewService(inventoryRepo, stationRepo)
	batteryService := battery.NewService(batteryRepo)
	vehicleService := vehicle.NewService(vehicleRepo)
	planService := plan.NewService(planRepo)
	bookingService := booking.NewService(booking.ServiceConfig{
		Repo:      bookingRepo,
		Stations:  stationRepo,
		Batteries: batteryRepo,
		Vehicles:  vehicleRepo,
		Packages:  planRepo,
		Logger:    log,
	})
	txService := swaptx.NewService(txRepo, batteryRepo, log)
	log.Info().Msg("services initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		JWTService:         jwtService,
		DB:                 pool,
		StationService:     stationService,
		InventoryService:   inventoryService,
		BatteryService:     batteryService,
		BookingService:     bookingService,
		VehicleService:     vehicleService,
		PlanService:        planService,
		TransactionService: txService,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

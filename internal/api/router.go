// Package api provides the HTTP API for the swap station backend.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/handler"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/middleware"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/api/models"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/auth"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/booking"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/inventory"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/plan"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/station"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/swaptx"
	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/vehicle"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	JWTService         *auth.JWTService
	DB                 handler.Pinger
	StationService     *station.Service
	InventoryService   *inventory.Service
	BatteryService     *battery.Service
	BookingService     *booking.Service
	VehicleService     *vehicle.Service
	PlanService        *plan.Service
	TransactionService *swaptx.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "evswap-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.RequireJSON)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	stationHandler := handler.NewStationHandler(cfg.StationService, cfg.Logger)
	inventoryHandler := handler.NewInventoryHandler(cfg.InventoryService)
	batteryHandler := handler.NewBatteryHandler(cfg.BatteryService)
	bookingHandler := handler.NewBookingHandler(cfg.BookingService)
	vehicleHandler := handler.NewVehicleHandler(cfg.VehicleService)
	planHandler := handler.NewPlanHandler(cfg.PlanService)
	transactionHandler := handler.NewTransactionHandler(cfg.TransactionService)

	authMiddleware := middleware.Auth(cfg.JWTService)
	staffOnly := middleware.RequireRole(models.RoleStaff, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)

	r.Route("/api", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Station endpoints. Reads are available to any authenticated
		// caller, mutations are staff work, deletion is admin-only.
		r.Route("/stations", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Get("/", stationHandler.List)
			r.Get("/health/overview", stationHandler.HealthOverview)
			r.Get("/nearby", stationHandler.Nearby)
			r.Get("/status/distribution", stationHandler.StatusDistribution)
			r.Get("/status/{status}", stationHandler.ListByStatus)
			r.With(adminOnly).Get("/revenue/total", transactionHandler.TotalRevenue)
			r.With(staffOnly).Post("/", stationHandler.Create)

			r.Route("/{stationId}", func(r chi.Router) {
				r.Get("/", stationHandler.Get)
				r.Get("/health", stationHandler.Health)
				r.Get("/inventory", inventoryHandler.StationPage)
				r.Get("/inventory/all", inventoryHandler.ListByStation)
				r.With(staffOnly).Put("/", stationHandler.Update)
				r.With(staffOnly).Put("/status", stationHandler.UpdateStatus)
				r.With(staffOnly).Post("/status/refresh", stationHandler.RefreshStatus)
				r.With(adminOnly).Delete("/", stationHandler.Delete)

				// Per-station transactions and revenue (staff)
				r.Group(func(r chi.Router) {
					r.Use(staffOnly)
					r.Get("/transactions", transactionHandler.ListByStation)
					r.Get("/transactions/search", transactionHandler.Search)
					r.Post("/transactions", transactionHandler.Create)
					r.Get("/revenue", transactionHandler.StationRevenue)
				})
			})
		})

		// Inventory slot management (staff)
		r.Route("/inventory", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(staffOnly)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Get("/status/statistics", inventoryHandler.Stats)
			r.Get("/status/statistics/station/{stationId}", inventoryHandler.StationStats)
			r.Post("/", inventoryHandler.Create)
			r.Route("/{inventoryId}", func(r chi.Router) {
				r.Get("/", inventoryHandler.Get)
				r.Put("/", inventoryHandler.Update)
				r.Delete("/", inventoryHandler.Delete)
			})
		})

		// Battery fleet management (staff)
		r.Route("/batteries", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(staffOnly)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))

			r.Get("/", batteryHandler.List)
			r.Get("/full", batteryHandler.ListFull)
			r.Get("/charging", batteryHandler.ListCharging)
			r.Get("/maintenance", batteryHandler.ListInMaintenance)
			r.Get("/statistics", batteryHandler.StatusCounts)
			r.Get("/station/{stationId}", batteryHandler.ListByStation)
			r.Post("/", batteryHandler.Create)
			r.Route("/{batteryId}", func(r chi.Router) {
				r.Get("/", batteryHandler.Get)
				r.Put("/", batteryHandler.Update)
				r.Delete("/", batteryHandler.Delete)
			})
		})

		// Booking endpoints (any authenticated caller). Allocation touches
		// several rows in one transaction, so it gets the tighter limit.
		r.Route("/bookings", func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(expensiveRateLimit).Post("/create", bookingHandler.Create)
			r.Get("/{bookingId}", bookingHandler.Get)
			r.Get("/user/{userId}", bookingHandler.ListByUser)
		})

		// Vehicle endpoints (any authenticated caller)
		r.Route("/vehicles", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Post("/", vehicleHandler.Create)
			r.Get("/user/{userId}", vehicleHandler.ListByUser)
			r.Route("/{vehicleId}", func(r chi.Router) {
				r.Get("/", vehicleHandler.Get)
				r.Put("/", vehicleHandler.Update)
				r.Delete("/", vehicleHandler.Delete)
			})
		})

		// Package plans: browsing is open to all callers, management is
		// admin work.
		r.Route("/packages", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)
			r.Get("/", planHandler.List)
			r.Get("/{packageId}", planHandler.Get)
			r.With(adminOnly).Post("/", planHandler.Create)
			r.With(adminOnly).Put("/{packageId}", planHandler.Update)
			r.With(adminOnly).Delete("/{packageId}", planHandler.Delete)
		})

		r.Route("/user-packages", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Post("/", planHandler.Purchase)
			r.Get("/user/{userId}", planHandler.ListUserPackages)
		})

		// Transactions by ID and revenue rollups (staff)
		r.Route("/transactions", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(staffOnly)
			r.Get("/{transactionId}", transactionHandler.Get)
			r.Put("/{transactionId}", transactionHandler.Update)
			r.Delete("/{transactionId}", transactionHandler.Delete)
		})

		// Battery returns (staff)
		r.Route("/battery-returns", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(staffOnly)
			r.Get("/", transactionHandler.ListReturns)
			r.Post("/", transactionHandler.RegisterReturn)
		})
	})

	return r
}

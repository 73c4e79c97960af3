package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/app"
	"carpool/internal/config"
	"carpool/internal/geo"
	"carpool/internal/handler"
	"carpool/internal/logging"
	internalRedis "carpool/internal/redis"
	"carpool/internal/repository"
	"carpool/internal/repository/postgres"
	"carpool/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", "error", err)
		} else {
			logger.Info("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Wire dependencies.
	server, err := wireServer(db, redisClient, nrApp, cfg)
	if err != nil {
		logger.Error("failed to wire server", "error", err)
		os.Exit(1)
	}

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	// Initialize repositories.
	rideRepo := postgres.NewRideRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	confirmer := postgres.NewConfirmer(db)

	// Select the distance provider.
	var distance geo.Distance
	if cfg.Geo.DistanceProvider == "googlemaps" && cfg.Geo.MapsAPIKey != "" {
		routed, err := geo.NewRoutedDistance(cfg.Geo.MapsAPIKey)
		if err != nil {
			return nil, err
		}
		distance = routed
	} else {
		distance = geo.NewHaversine()
	}

	// Select the ride search index.
	var searcher repository.RideSearcher
	var geoIndex internalRedis.RideGeoStoreInterface
	if cfg.Geo.SearchIndex == "redis" {
		geoStore := internalRedis.NewRideGeoStore(redisClient)
		geoIndex = geoStore
		searcher = internalRedis.NewGeoSearcher(geoStore, rideRepo)
	} else {
		searcher = rideRepo
	}

	// Fare policy from config; the timezone fixes the rush-hour reference.
	policy := service.DefaultFarePolicy()
	policy.BaseFare = cfg.Fare.BaseFare
	policy.PerKmRate = cfg.Fare.PerKmRate
	policy.SurgeFactor = cfg.Fare.SurgeFactor
	if tz, err := time.LoadLocation(cfg.Fare.Timezone); err == nil {
		policy.Timezone = tz
	}

	// Initialize services.
	timeout := cfg.Geo.CollaboratorTimeout
	fareService := service.NewFareService(distance, service.SystemClock{}, policy, timeout)
	matchingService := service.NewMatchingService(searcher, timeout)
	bookingService := service.NewBookingService(bookingRepo, confirmer, timeout)
	rideService := service.NewRideService(rideRepo, bookingRepo, geoIndex)

	// Initialize handlers.
	fareHandler := handler.NewFareHandler(fareService)
	rideHandler := handler.NewRideHandler(rideService, matchingService)
	bookingHandler := handler.NewBookingHandler(rideService, bookingService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		FareHandler:    fareHandler,
		RideHandler:    rideHandler,
		BookingHandler: bookingHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}

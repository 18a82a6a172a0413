package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"hail/internal/app"
	"hail/internal/config"
	"hail/internal/handler"
	"hail/internal/pricing"
	internalRedis "hail/internal/redis"
	"hail/internal/registry"
	"hail/internal/repository/postgres"
	"hail/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	conditionsStore := internalRedis.NewConditionsStore(redisClient)
	positionStore := internalRedis.NewPositionStore(redisClient)

	// Repositories.
	rideRepo := postgres.NewRideRepository(db)
	earningRepo := postgres.NewEarningRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Reference data and services.
	cityRegistry := registry.New()
	engine := pricing.NewEngine(cityRegistry, conditionsStore)
	notificationService := service.NewNotificationService(notificationRepo)
	rideService := service.NewRideService(rideRepo, earningRepo, engine, notificationService, lockStore)
	trackingService := service.NewTrackingService(cityRegistry, positionStore)

	// Handlers.
	fareHandler := handler.NewFareHandler(rideService)
	rideHandler := handler.NewRideHandler(rideService)
	trackingHandler := handler.NewTrackingHandler(rideService, trackingService)
	cityHandler := handler.NewCityHandler(cityRegistry)

	router := app.NewRouter(app.RouterDeps{
		FareHandler:     fareHandler,
		RideHandler:     rideHandler,
		TrackingHandler: trackingHandler,
		CityHandler:     cityHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tiltlabs/engineer-on-demand/internal/adapters/cache"
	"github.com/tiltlabs/engineer-on-demand/internal/adapters/database"
	"github.com/tiltlabs/engineer-on-demand/internal/adapters/providers/geolocation"
	"github.com/tiltlabs/engineer-on-demand/internal/api/handlers"
	"github.com/tiltlabs/engineer-on-demand/internal/api/middleware"
	"github.com/tiltlabs/engineer-on-demand/internal/api/routes"
	"github.com/tiltlabs/engineer-on-demand/internal/application/services"
	"github.com/tiltlabs/engineer-on-demand/internal/domain/providers"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/clients/postgres"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/clients/redis"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/notifications"
	"github.com/tiltlabs/engineer-on-demand/internal/infrastructure/observability"
	"github.com/tiltlabs/engineer-on-demand/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("engineer-on-demand", cfg.Env)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize postgres client")
	}
	defer pgClient.Close()
	log.Info().Msg("postgres client initialized")

	// Initialize Redis client. The service works without it; caching is
	// simply skipped.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("redis client initialized")
	}

	// Adapters
	engineerRepo := database.NewEngineerAdapter(pgClient)
	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	earlyAccessRepo := database.NewEarlyAccessAdapter(pgClient)

	var geoProvider providers.GeolocationProvider
	if cfg.Geocoder.Provider == "bigdatacloud" {
		geoProvider = geolocation.NewBigDataCloudProviderWithOptions(cacheProvider, cfg.Geocoder.BaseURL, nil)
		log.Info().Msg("using bigdatacloud reverse geocoding")
	} else {
		geoProvider = geolocation.NewMockGeolocationProvider()
		log.Info().Msg("using mock reverse geocoding")
	}

	sender := notifications.NewSMTPSender(
		cfg.SMTP.SMTPAddr(),
		cfg.SMTP.Host,
		cfg.SMTP.From,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	// Services
	notificationService := services.NewNotificationService(sender, cfg.SMTP.To)
	bookingService := services.NewBookingService(appointmentRepo, engineerRepo, notificationService)
	discoveryService := services.NewDiscoveryService(engineerRepo, cfg.Discovery.DefaultLimit)
	earlyAccessService := services.NewEarlyAccessService(earlyAccessRepo)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	engineerHandler := handlers.NewEngineerHandler(discoveryService, engineerRepo)
	earlyAccessHandler := handlers.NewEarlyAccessHandler(earlyAccessService)
	geolocationHandler := handlers.NewGeolocationHandler(geoProvider)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}
	rateLimiter := middleware.NewRateLimiter(rate.Limit(2), 10)

	router := routes.NewRouter(
		bookingHandler,
		engineerHandler,
		earlyAccessHandler,
		geolocationHandler,
		cacheMiddleware,
		rateLimiter,
	)

	// CORS wraps everything so headers are set even on cache hits.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := corsHandler.Handler(router.SetupRoutes())

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/formgate/formgate/internal/api"
	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/dispatch/gateway"
	"github.com/formgate/formgate/internal/domain"
	"github.com/formgate/formgate/internal/repository/mongo"
	"github.com/formgate/formgate/internal/repository/postgres"
	"github.com/formgate/formgate/internal/repository/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded .env")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Backend).
		Msg("Starting formgate API server")

	ctx := context.Background()

	// Redis always backs cooldowns and prompt sessions.
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	formStore, closeStore, err := newFormStore(ctx, cfg, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize form store")
	}
	defer closeStore()

	cooldowns := redis.NewCooldownTracker(redisClient)
	sessions := redis.NewSessionStore(redisClient)
	dispatcher := gateway.NewClient(cfg.Gateway)

	// Initialize router
	router := api.NewRouter(cfg, formStore, cooldowns, sessions, dispatcher)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// newFormStore selects the form store backend from configuration.
func newFormStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (domain.FormStore, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		return redis.NewFormStore(redisClient), func() {}, nil
	case "mongo":
		mongoClient, err := mongo.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return mongo.NewFormStore(mongoClient), func() { mongoClient.Close(ctx) }, nil
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewFormStore(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"eventgraph/backend/internal/api"
	"eventgraph/backend/internal/graph"
	"eventgraph/backend/internal/recommend"
	"eventgraph/backend/internal/services"
	"eventgraph/backend/pkg/config"
	"eventgraph/backend/pkg/logger"
)

func main() {
	cfg, err := initRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting event graph API server...", zap.String("env", cfg.Env))

	// Connect to Neo4j
	ctx := context.Background()
	store, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply graph schema", zap.Error(err))
	}

	router := api.NewRouter(api.RouterConfig{
		Production:     cfg.IsProduction(),
		CORSOrigin:     cfg.CORSOrigin,
		MetricsEnabled: cfg.MetricsEnabled,
	}, newHandler(store), log)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// initRuntime loads configuration, .env included, and only then builds the
// logger so that ENV and LOG_LEVEL from the file take effect.
func initRuntime() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// newHandler wires repositories, services and the recommender over one runner
func newHandler(runner graph.Runner) *api.Handler {
	eventRepo := graph.NewEventRepository(runner)
	userRepo := graph.NewUserRepository(runner)
	registrationRepo := graph.NewRegistrationRepository(runner)

	engine := recommend.NewEngine(registrationRepo)

	return api.NewHandler(
		services.NewEventService(eventRepo),
		services.NewUserService(userRepo),
		services.NewRegistrationService(userRepo, eventRepo, registrationRepo, engine),
		logger.Named("api"),
	)
}

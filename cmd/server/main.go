package main

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/controller"
	"ctchen222/Exercise-Tracker/internal/api/repository"
	"ctchen222/Exercise-Tracker/internal/api/service"
	"ctchen222/Exercise-Tracker/internal/config"
	"ctchen222/Exercise-Tracker/internal/db"
	"ctchen222/Exercise-Tracker/internal/events"
	"ctchen222/Exercise-Tracker/internal/logger"
	"ctchen222/Exercise-Tracker/internal/server"
	"ctchen222/Exercise-Tracker/internal/telemetry"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		slog.Error("exercise tracker stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger.Init(os.Stdout, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Options{
		Endpoint: cfg.OTLPEndpoint,
		Stdout:   cfg.TelemetryStdout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	// Initialize the entity store
	DB, err := db.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer DB.Close()

	// Create repositories
	var userRepo repository.UserRepository = repository.NewUserRepository(DB)
	exerciseRepo := repository.NewExerciseRepository(DB)
	var publisher events.Publisher = events.NopPublisher{}

	// Redis is optional: it fronts user lookups and carries domain events.
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		userRepo = repository.NewCachedUserRepository(userRepo, rdb, cfg.UserCacheTTL)
		publisher = events.NewRedisPublisher(rdb)
		slog.InfoContext(ctx, "redis enabled", "redis.addr", cfg.RedisAddr)
	}

	// Create services
	clock := clockwork.NewRealClock()
	userService := service.NewUserService(userRepo, publisher, clock)
	exerciseService := service.NewExerciseService(userRepo, exerciseRepo, publisher, clock)

	// Create controllers
	userController := controller.NewUserController(userService)
	exerciseController := controller.NewExerciseController(exerciseService)

	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(DB, userController, exerciseController, server.Options{
		AllowedOrigins: cfg.AllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "http.address", cfg.HTTPAddress, "store.driver", cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("Server exiting")
	return nil
}

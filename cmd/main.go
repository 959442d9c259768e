package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/db"
	"github.com/senyabanana/freight-service/internal/handlers"
	"github.com/senyabanana/freight-service/internal/repository"
	"github.com/senyabanana/freight-service/internal/router"
	"github.com/senyabanana/freight-service/internal/router/config"
	"github.com/senyabanana/freight-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	bootLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		bootLogger.Warn("failed to load .env", slog.String("error", err.Error()))
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		bootLogger.Error("cannot load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	if err = runDBMigration(cfg.MigrationURL, cfg.PostgresConn); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("db migrated successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.InitDb(ctx, cfg)
	if err != nil {
		logger.Error("error initializing database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	store := repository.NewPostgresStore(dbPool)
	pricing := services.NewPricingEngine(cfg.PricingWindow)

	bidService := services.NewBidService(store, pricing)
	acceptance := services.NewAcceptanceCoordinator(store)
	offerService := services.NewOfferService(store)
	dealService := services.NewDealService(store)
	transporterService := services.NewTransporterService(store)

	routes := router.InitRoutes(router.Handlers{
		Bids:         handlers.NewBidHandler(bidService, acceptance, logger, cfg.RequestTimeout),
		Offers:       handlers.NewOfferHandler(offerService, logger, cfg.RequestTimeout),
		Deals:        handlers.NewDealHandler(dealService, logger, cfg.RequestTimeout),
		Transporters: handlers.NewTransporterHandler(transporterService, logger, cfg.RequestTimeout),
	}, auth.NewTokenVerifier(cfg.JWTSecret), logger)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: routes,
	}

	go func() {
		logger.Info("server is listening", slog.String("address", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

func runDBMigration(migrationURL string, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}
	defer migration.Close()

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productapi/internal/api"
	"productapi/internal/auth"
	"productapi/internal/catalog"
	"productapi/internal/config"
	"productapi/internal/seed"
	"productapi/internal/storage"
	"productapi/internal/storage/memstore"
	"productapi/internal/storage/mongostore"
	"productapi/internal/storage/pgstore"
	"productapi/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogger(cfg)
	slog.Info("starting productapi", "env", cfg.Env, "driver", cfg.Store.Driver)

	shutdownTelemetry := telemetry.Setup("productapi")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	store, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	products := catalog.NewService(store)
	svc := api.Services{
		Auth:     auth.NewService(store, tokens, cfg.Auth.BcryptCost),
		Tokens:   tokens,
		Products: products,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedCSV != "" {
		n, err := seed.ImportProductsFromCSV(ctx, products, cfg.SeedCSV)
		if err != nil {
			return fmt.Errorf("CSV import failed: %w", err)
		}
		slog.Info("seeded products", "count", n, "file", cfg.SeedCSV)
	}

	server := api.NewAPIServer(cfg.Addr(), svc, cfg.Server.AllowedOrigins)
	if err := server.Run(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

func openStore(cfg config.StoreConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := pgstore.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		slog.Info("connected to PostgreSQL")
		return s, nil
	case config.DriverMemory:
		slog.Warn("using in-memory store; data is lost on exit")
		return memstore.New(), nil
	default:
		s, err := mongostore.NewStore(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to MongoDB", "db", cfg.MongoDB)
		return s, nil
	}
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Env == config.EnvProduction {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

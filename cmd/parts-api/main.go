// Package main provides the parts engine API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fgauto/parts-engine/cmd/parts-api/handlers"
	"github.com/fgauto/parts-engine/internal/cache"
	"github.com/fgauto/parts-engine/internal/catalog"
	"github.com/fgauto/parts-engine/internal/config"
	"github.com/fgauto/parts-engine/internal/fitment"
	"github.com/fgauto/parts-engine/internal/observability"
	"github.com/fgauto/parts-engine/internal/order"
	"github.com/fgauto/parts-engine/internal/session"
	"github.com/fgauto/parts-engine/internal/storage"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Str("cache", cfg.Cache.Driver).
		Str("catalog", cfg.Catalog.Path).
		Msg("Starting parts engine API")

	// Load the catalog dataset
	ds, err := catalog.LoadDataset(cfg.Catalog.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
		os.Exit(1)
	}
	store := catalog.NewStore(ds)
	overlay := fitment.NewOverlay(ds.Fitment)

	// Open the blob store
	blobs, err := storage.Open(cfg.DatabaseDriverName(), cfg.DatabaseDSN())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open blob store")
		os.Exit(1)
	}
	defer blobs.Close()

	// Cache for decoded VINs
	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory cache")
			cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}
	defer cacheClient.Close()

	sessions := session.NewManager(blobs, session.ManagerConfig{
		DefaultCurrency: cfg.Defaults.Currency,
		DefaultLanguage: cfg.Defaults.Language,
	})

	decoder := fitment.NewDecoder(fitment.DecoderConfig{
		BaseURL:  cfg.VinDecoder.BaseURL,
		Timeout:  cfg.VinDecoder.Timeout,
		CacheTTL: cfg.VinDecoder.CacheTTL,
	}, cacheClient)

	builder := order.NewBuilder(store, overlay, ds.Currency, cfg.Business.Name)
	notifier := order.NewNotifier(cfg.Notifications.WebhookURL, cfg.Notifications.Timeout, logger)

	h := handlers.New(handlers.Deps{
		Logger:   logger,
		Catalog:  store,
		Overlay:  overlay,
		Sessions: sessions,
		Blobs:    blobs,
		Decoder:  decoder,
		Builder:  builder,
		Notifier: notifier,
		Currency: ds.Currency,
		Tiers:    cfg.Tiers.Catalog(),
		Business: cfg.Business,
		Payments: cfg.Payments,
	})

	router := NewRouter(h, cfg.Server)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt or error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

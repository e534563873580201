package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"tya/internal/config"
	"tya/internal/logging"
	"tya/internal/store"
	"tya/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.SetGlobalLogger(logger)

	ctx := context.Background()

	var persister store.Persister
	if cfg.Database.URL != "" {
		db, err := openDatabase(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatal(err, "connect to database")
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(db); err != nil {
				logger.Fatal(err, "migrate database")
			}
		}
		persister = postgres.New(db)
	} else {
		logger.Info("DATABASE_URL not set, catalog is kept in memory only")
	}

	dataStore := store.New(persister)
	if err := dataStore.Load(ctx); err != nil {
		logger.Fatal(err, "load catalog")
	}

	validator, closeValidator, err := newValidator(ctx, cfg)
	if err != nil {
		logger.Fatal(err, "configure token validation")
	}
	defer closeValidator()

	if cfg.SeedDemo {
		if err := bootstrapDemoData(ctx, cfg, dataStore); err != nil {
			logger.Fatal(err, "seed demo catalog")
		}
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHTTPHandler(cfg, dataStore, validator),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("catalog service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "server forced to shutdown")
	}

	logger.Info("server exited")
}


package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"game-catalog/config"
	"game-catalog/handlers"
	"game-catalog/services"
	"game-catalog/utils"
	"game-catalog/workers"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog lives in memory for the life of the process.
	store := services.NewExampleGameStore()

	var sinks []workers.Sink
	if cfg.DatabaseURL != "" {
		mirror, err := services.OpenCatalogMirror(cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to open catalog mirror")
		}
		defer mirror.Close()
		sinks = append(sinks, mirror)
	}
	if cfg.R2.Enabled() {
		client, err := utils.NewR2Client(ctx, cfg.R2)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize R2 client")
		}
		sinks = append(sinks, utils.NewSnapshotUploader(client, cfg.R2, "game-catalog"))
	}

	snapshots := workers.NewSnapshotWorker(store, logger, sinks...)
	if len(sinks) > 0 {
		if err := snapshots.Start(cfg.SnapshotInterval); err != nil {
			logger.WithError(err).Fatal("failed to start snapshot worker")
		}
	}

	app := handlers.NewApp(logger, store, handlers.AppOptions{AllowedOrigins: cfg.AllowedOrigins})

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			logger.WithError(err).Error("server error")
			stop()
		}
	}()
	logger.WithFields(logrus.Fields{
		"addr":      cfg.Addr,
		"snapshots": len(sinks),
		"origins":   cfg.AllowedOrigins,
	}).Info("server running")

	<-ctx.Done()
	logger.Info("shutting down server")

	if err := snapshots.Stop(); err != nil {
		logger.WithError(err).Warn("snapshot scheduler did not stop cleanly")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/grocerydash/internal/config"
	"github.com/mamadbah2/grocerydash/internal/ingest"
	sqliterepo "github.com/mamadbah2/grocerydash/internal/repository/sqlite"
	"github.com/mamadbah2/grocerydash/internal/scheduler"
	"github.com/mamadbah2/grocerydash/internal/server/handlers"
	"github.com/mamadbah2/grocerydash/internal/server/router"
	"github.com/mamadbah2/grocerydash/internal/service/analytics"
	"github.com/mamadbah2/grocerydash/pkg/clients/dataset"
	"github.com/mamadbah2/grocerydash/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := sqliterepo.New(cfg.Storage.SQLitePath, baseLogger.Named("repo.sqlite"))
	if err != nil {
		baseLogger.Fatal("failed to open snapshot store", zap.Error(err))
	}

	var downloader ingest.Downloader
	if cfg.Dataset.URL != "" {
		downloader = dataset.NewClient(cfg.Dataset.URL)
	}
	loader := ingest.NewLoader(cfg.Dataset.Path, downloader, time.Now, baseLogger.Named("ingest"))

	analyticsSvc := analytics.NewService(store, loader, baseLogger.Named("svc.analytics"))
	if err := analyticsSvc.InitialSetup(context.Background(), cfg.Storage.Override); err != nil {
		baseLogger.Fatal("failed to establish inventory snapshot", zap.Error(err))
	}

	dashboardHandler := handlers.NewDashboardHandler(analyticsSvc, baseLogger.Named("handlers.dashboard"))
	engine := router.New(dashboardHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Refresh, analyticsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

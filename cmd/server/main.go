package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/roostery/internal/config"
	"github.com/mamadbah2/roostery/internal/repository"
	"github.com/mamadbah2/roostery/internal/scheduler"
	"github.com/mamadbah2/roostery/internal/server/handlers"
	"github.com/mamadbah2/roostery/internal/server/router"
	analyticssvc "github.com/mamadbah2/roostery/internal/service/analytics"
	exportsvc "github.com/mamadbah2/roostery/internal/service/export"
	"github.com/mamadbah2/roostery/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	source, closeSource, err := repository.OpenRecordSource(context.Background(), cfg, baseLogger.Named("repo.records"))
	if err != nil {
		baseLogger.Fatal("failed to init record source", zap.Error(err))
	}
	defer func() {
		if err := closeSource(context.Background()); err != nil {
			baseLogger.Error("failed to close record source", zap.Error(err))
		}
	}()

	sheetsRepo, err := repository.OpenSheets(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	analyticsSvc := analyticssvc.NewService(source, baseLogger.Named("svc.analytics"))
	exportSvc := exportsvc.NewService(analyticsSvc, sheetsRepo, baseLogger.Named("svc.export"))

	if exportSvc.Enabled() {
		sched, err := scheduler.NewScheduler(cfg.Reporting, exportSvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("spreadsheet id missing, scheduled export disabled")
	}

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc, exportSvc, baseLogger.Named("handlers.analytics"))
	engine := router.New(analyticsHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

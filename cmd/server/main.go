package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/unidoc/unipdf/v3/common/license"
	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/config"
	"github.com/visijn/haccp/internal/repository/snapshot"
	"github.com/visijn/haccp/internal/scheduler"
	"github.com/visijn/haccp/internal/server/handlers"
	"github.com/visijn/haccp/internal/server/router"
	backupsvc "github.com/visijn/haccp/internal/service/backup"
	recordsvc "github.com/visijn/haccp/internal/service/records"
	reportsvc "github.com/visijn/haccp/internal/service/report"
	"github.com/visijn/haccp/internal/store"
	"github.com/visijn/haccp/pkg/clients/anthropic"
	"github.com/visijn/haccp/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// unipdf refuses to write documents without a license key.
	if cfg.Reporting.UnidocLicenseKey != "" {
		if err := license.SetMeteredKey(cfg.Reporting.UnidocLicenseKey); err != nil {
			baseLogger.Fatal("failed to set unidoc license key", zap.Error(err))
		}
	} else {
		baseLogger.Warn("unidoc license key missing, report generation will fail")
	}

	slotRepo, err := snapshot.NewSQLiteRepository(context.Background(), cfg.Storage.Path, cfg.Storage.QuotaBytes)
	if err != nil {
		baseLogger.Fatal("failed to open snapshot slot", zap.Error(err))
	}
	defer func() {
		if err := slotRepo.Close(); err != nil {
			baseLogger.Error("failed to close snapshot slot", zap.Error(err))
		}
	}()

	st := store.NewStore(slotRepo, baseLogger.Named("store"))
	st.Load(context.Background())

	loc := cfg.Location()
	recordsSvc := recordsvc.NewService(st, loc, baseLogger.Named("svc.records"))
	backupSvc := backupsvc.NewService(st, baseLogger.Named("svc.backup"))
	reportGen := reportsvc.NewGenerator(loc, baseLogger.Named("svc.report"))

	// Initialize AI Client
	var aiClient anthropic.Client
	if key := cfg.AssistantKey(st.Snapshot().Settings.APIKey); key != "" {
		aiClient = anthropic.NewClient(key)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, assistant disabled")
	}

	recordsHandler := handlers.NewRecordsHandler(recordsSvc, baseLogger.Named("handlers.records"))
	adminHandler := handlers.NewAdminHandler(recordsSvc, backupSvc, reportGen, aiClient, loc, baseLogger.Named("handlers.admin"))
	engine := router.New(recordsHandler, adminHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, recordsSvc, reportGen, baseLogger.Named("scheduler"))
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

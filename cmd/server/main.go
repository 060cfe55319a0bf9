package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medibill/internal/auth"
	"medibill/internal/config"
	"medibill/internal/handler"
	"medibill/internal/logger"
	"medibill/internal/metrics"
	"medibill/internal/notify/noop"
	"medibill/internal/notify/ses"
	"medibill/internal/port"
	"medibill/internal/repository/postgres"
	"medibill/internal/router"
	"medibill/internal/service"
	s3storage "medibill/internal/storage/s3"
	"medibill/internal/store/httpstore"
	"medibill/internal/xlsxexport"
)

// @title MediBill Billing API
// @version 1.0
// @description Clinic billing: invoice listings, statistics, detail and exports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	// Initialize invoice store
	var (
		invoiceStore port.InvoiceStore
		clinicStore  port.ClinicStore
		pinger       handler.Pinger
	)
	switch cfg.Store.Provider {
	case "http":
		client := httpstore.New(cfg.Store.BaseURL, cfg.Store.APIToken, cfg.Store.Timeout())
		invoiceStore, clinicStore = client, client
		zl.Info("using remote invoice store", zap.String("base_url", cfg.Store.BaseURL))
	default:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		invoiceStore = postgres.NewInvoiceRepo(db)
		clinicStore = postgres.NewClinicRepo(db)
		pinger = db
	}

	// Initialize notifier
	notifier := noop.NewNoopNotifier()
	if cfg.Notify.Provider == "ses" {
		notifier, err = ses.NewSESNotifier(&cfg.Notify)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	}

	// Initialize export archive
	var archive port.ExportArchive
	if cfg.Export.ArchiveEnabled {
		archive, err = s3storage.NewArchive(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	billingSvc := service.NewBillingService(
		invoiceStore,
		clinicStore,
		xlsxexport.NewExporter(),
		archive,
		notifier,
		metrics.New(nil),
		service.BillingConfig{
			CurrencySymbol: cfg.Billing.CurrencySymbol,
			ArchiveEnabled: cfg.Export.ArchiveEnabled,
			ArchiveBucket:  cfg.S3.Bucket,
			ArchivePrefix:  cfg.Export.ArchivePrefix,
			LinkTTL:        time.Duration(cfg.S3.PresignExpiry) * time.Second,
			BoardTTL:       cfg.Billing.BoardTTL,
		},
	)

	// Initialize handlers
	billingH := handler.NewBillingHandler(billingSvc)
	healthH := handler.NewHealthHandler(pinger)

	// Setup router
	r := router.Setup(auth.NewTokens(&cfg.JWT), billingH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("store", cfg.Store.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	zl.Info("server stopped")
	return nil
}

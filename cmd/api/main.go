package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vinculodevida/lactario/internal/config"
	v1 "github.com/vinculodevida/lactario/internal/handler/v1"
	"github.com/vinculodevida/lactario/internal/repository"
	"github.com/vinculodevida/lactario/internal/router"
	"github.com/vinculodevida/lactario/internal/service"
	"github.com/vinculodevida/lactario/pkg/auth"
	"github.com/vinculodevida/lactario/pkg/database"
	"github.com/vinculodevida/lactario/pkg/logger"
	"github.com/vinculodevida/lactario/pkg/metrics"
	"github.com/vinculodevida/lactario/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	if err := database.Seed(db, cfg.Bootstrap, log); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	mx := metrics.NewCollector("lactario")

	motherRepo := repository.NewMotherRepository(db)
	infantRepo := repository.NewInfantRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTxManager(db)

	auditSvc := service.NewAuditService(auditRepo, log, mx)
	defer auditSvc.Shutdown()

	jwtManager := auth.NewJWTManager(cfg.JWT)

	registrationSvc := service.NewRegistrationService(motherRepo, infantRepo, catalogRepo, txManager, auditSvc, mx, log)
	visitSvc := service.NewVisitService(visitRepo, infantRepo, catalogRepo, auditSvc, mx, log)
	authSvc := service.NewAuthService(userRepo, jwtManager, log)
	userSvc := service.NewUserService(userRepo, visitRepo, txManager, auditSvc, log)
	reportSvc := service.NewReportService(reportRepo, visitRepo, auditSvc, mx, log)

	handlers := router.Handlers{
		Auth:    v1.NewAuthHandler(authSvc, log),
		Infants: v1.NewInfantHandler(registrationSvc, log),
		Visits:  v1.NewVisitHandler(visitSvc, registrationSvc, log),
		Users:   v1.NewUserHandler(userSvc, log),
		Reports: v1.NewReportHandler(reportSvc, registrationSvc, log),
	}

	engine := router.New(cfg, jwtManager, mx, handlers, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"procurement-service/internal/handler"
	"procurement-service/internal/middleware"
	"procurement-service/internal/service"
	"procurement-service/pkg/config"
	"procurement-service/pkg/database"
	"procurement-service/pkg/filestorage"
	"procurement-service/pkg/jwtutil"
	"procurement-service/pkg/logger"
	"procurement-service/pkg/metrics"
	"procurement-service/pkg/validation"
	appmetrics "procurement-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const serviceName = "procurement-service"

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		Fields:      []zap.Field{zap.String("service", serviceName)},
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()
	log.Info("Starting procurement service...", cfg.LogConfig()...)

	// Initialize Prometheus metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics := appmetrics.NewMetrics(cfg.Metrics.Prefix, registry)
	httpMetrics := metrics.NewHTTPMetrics(serviceName, registry)
	log.Info("Prometheus metrics initialized")

	// Initialize database and run migrations
	db, err := database.Open(&cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Closing database failed", zap.Error(err))
		}
	}()
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host), zap.String("db_name", cfg.DB.DBName))

	storage, err := filestorage.NewLocalFileStorage(cfg.Storage.PublicRoot)
	if err != nil {
		log.Fatal("Failed to prepare file storage", zap.Error(err))
	}

	// Services
	settings := service.NewSettingsService(db, log.Named("settings"), domainMetrics)
	orders := service.NewOrderService(db, settings, cfg.Orders.StrictStatus, log.Named("orders"), domainMetrics)
	suppliers := service.NewSupplierService(db, storage, log.Named("suppliers"), domainMetrics)
	attachments := service.NewAttachmentService(db, storage, log.Named("attachments"), domainMetrics)
	stages := service.NewStageService(db, domainMetrics)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.NewValidator()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())
	e.Use(logger.Middleware())
	if cfg.RateLimit.Rate != "" {
		rateLimit, err := middleware.RateLimit(cfg.RateLimit.Rate)
		if err != nil {
			log.Fatal("Invalid rate limit", zap.Error(err))
		}
		e.Use(rateLimit)
	}

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))

	// Uploaded files
	uploadsDir := filepath.Join(storage.Root(), strings.TrimPrefix(cfg.Storage.URLPrefix, "/"))
	e.Static(cfg.Storage.URLPrefix, uploadsDir)

	// Routes
	jwtUtil := jwtutil.NewJWTUtil(cfg.Session.SigningKey)
	handler.Register(e, &handler.Handlers{
		Orders:      handler.NewOrderHandler(orders),
		Suppliers:   handler.NewSupplierHandler(suppliers),
		Attachments: handler.NewAttachmentHandler(attachments),
		Settings:    handler.NewSettingsHandler(settings, stages),
	}, handler.RouteOptions{
		Session:         middleware.AuthMiddleware(jwtUtil, cfg.Session, domainMetrics),
		PublicDropdowns: cfg.Session.PublicDropdowns,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

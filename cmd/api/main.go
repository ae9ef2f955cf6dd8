// @title           Form Service API
// @version         1.0
// @description     Form builder API: forms, fields, rendering, submissions and JSON field transfer
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.wealist.co.kr/support
// @contact.email  support@wealist.co.kr

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "form-service/docs" // Swagger docs import

	"form-service/internal/cache"
	"form-service/internal/client"
	"form-service/internal/config"
	"form-service/internal/database"
	"form-service/internal/job"
	"form-service/internal/metrics"
	"form-service/internal/router"
	"form-service/internal/signer"
	"form-service/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Form Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("artifact_backend", cfg.Artifacts.Backend),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	if err := database.SafeAutoMigrate(db, logger); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	}

	database.RegisterMetricsCallbacks(db, m)
	stopDBStats := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(stopDBStats)

	collector := metrics.NewBusinessMetricsCollector(db, m, logger, time.Minute)
	collector.Start()
	defer collector.Stop()

	// Settings cache (optional)
	var formCache cache.FormCache = cache.NoopFormCache{}
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Failed to connect to Redis, settings cache disabled", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close()
		formCache = cache.NewFormCache(redisClient, cfg.Redis.CacheTTL, logger)
	}

	// Export artifact store
	store, err := newArtifactStore(cfg, m)
	if err != nil {
		logger.Fatal("Failed to initialize artifact store", zap.Error(err))
	}

	// Submission notifier
	var notifier client.NotificationClient = client.NewNoOpNotificationClient()
	if cfg.Notifier.BaseURL != "" {
		notifier = client.NewNotificationClient(cfg.Notifier.BaseURL, cfg.Notifier.APIKey, cfg.Notifier.Timeout, logger, m)
		logger.Info("Notification client initialized", zap.String("base_url", cfg.Notifier.BaseURL))
	} else {
		logger.Warn("Notifier not configured, submission emails disabled")
	}

	// Artifact expiry
	scheduler, err := job.NewCleanupJob(store, cfg.Artifacts.MaxAge, logger).Schedule(cfg.Artifacts.CleanupSpec)
	if err != nil {
		logger.Fatal("Invalid artifact cleanup schedule",
			zap.String("spec", cfg.Artifacts.CleanupSpec),
			zap.Error(err),
		)
	}
	scheduler.Start()

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		JWTSecret:      cfg.JWT.Secret,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        m,
		Forms:          cfg.Forms,
		Cache:          formCache,
		Store:          store,
		Notifier:       notifier,
		Signer:         signer.NewHMACSigner(cfg.SigningKey(), 0),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Form Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// wait for a running cleanup to finish
	<-scheduler.Stop().Done()

	logger.Info("Server exited gracefully")
}

// newArtifactStore picks the export artifact backend
func newArtifactStore(cfg *config.Config, m *metrics.Metrics) (storage.ArtifactStore, error) {
	if cfg.Artifacts.Backend != "s3" {
		return storage.NewLocalStore(cfg.Artifacts.TempDir)
	}
	s3Client, err := client.NewS3Client(&cfg.S3, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	return storage.NewS3Store(s3Client, cfg.Artifacts.S3Prefix), nil
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/infrastructure/cache"
	"github.com/livestock/backend/internal/infrastructure/config"
	"github.com/livestock/backend/internal/infrastructure/logger"
	"github.com/livestock/backend/internal/infrastructure/persistence"
	"github.com/livestock/backend/internal/infrastructure/telemetry"
	"github.com/livestock/backend/internal/interfaces/http/handler"
	"github.com/livestock/backend/internal/interfaces/http/middleware"
	"github.com/livestock/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(baseLog)
	}()

	ctx := context.Background()

	// OTLP log export wraps the base logger when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(cfg.Telemetry), baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	log := logProvider.Bridge(baseLog, zap.InfoLevel)

	log.Info("Starting livestock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	// span profiles need a running profiler
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database with zap-backed GORM logger and query tracing
	gormOpts := []logger.GormLoggerOption{}
	if cfg.App.Env == "production" {
		gormOpts = append(gormOpts, logger.WithoutParams())
	}
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), gormOpts...)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database), log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Read-side query cache
	queryCache, err := cache.NewQueryCacheFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create query cache", zap.Error(err))
	}
	defer func() {
		if err := queryCache.Close(); err != nil {
			log.Error("Error closing query cache", zap.Error(err))
		}
	}()

	// Application services
	repos := persistence.NewRepositories(db.DB)
	serviceOpts := []applivestock.ServiceOption{applivestock.WithQueryCache(queryCache)}
	if meterProvider.IsEnabled() {
		livestockMetrics, err := telemetry.NewLivestockMetrics(telemetry.LivestockMetricsConfig{
			Meter:        meterProvider.Meter("livestock"),
			Logger:       log,
			HerdProvider: telemetry.NewGormHerdSizeProvider(db.DB),
		})
		if err != nil {
			log.Fatal("Failed to create livestock metrics", zap.Error(err))
		}
		livestockMetrics.StartPeriodicCollection(ctx, 0)
		defer livestockMetrics.Stop()
		serviceOpts = append(serviceOpts, applivestock.WithMetrics(livestockMetrics))
	}
	livestockService := applivestock.NewLivestockService(repos, persistence.NewGormTransactionScope(db.DB), log, serviceOpts...)
	userService := applivestock.NewUserService(repos.Users, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter := router.NewRateLimiter(cfg.HTTP)
	if rateLimiter != nil {
		defer rateLimiter.Stop()
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		Meter:       meterProvider.Meter("http.server"),
		RateLimiter: rateLimiter,
	}, router.Handlers{
		Livestock: handler.NewLivestockHandler(livestockService),
		User:      handler.NewUserHandler(userService),
		System:    handler.NewSystemHandler(db, version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down log provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

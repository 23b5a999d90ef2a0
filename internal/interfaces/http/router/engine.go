package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/livestock/backend/internal/infrastructure/config"
	"github.com/livestock/backend/internal/infrastructure/logger"
	"github.com/livestock/backend/internal/interfaces/http/handler"
	"github.com/livestock/backend/internal/interfaces/http/middleware"
)

// EngineConfig configures the middleware chain built by NewEngine
type EngineConfig struct {
	Logger  *zap.Logger
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig
	// Meter records HTTP server metrics. Nil disables them.
	Meter metric.Meter
	// RateLimiter is applied per client IP when set. The caller owns it and
	// must Stop it on shutdown.
	RateLimiter *middleware.RateLimiter
}

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Livestock *handler.LivestockHandler
	User      *handler.UserHandler
	System    *handler.SystemHandler
}

// NewEngine builds the gin engine: middleware chain, problem responses for
// unknown routes and methods, the system endpoints and the /api/v1 routes.
//
// Middleware order:
//  1. RequestID, so every later stage can read it
//  2. Tracing and span enrichment
//  3. Recovery, which answers panics with a problem body
//  4. Request logging and HTTP metrics
//  5. Security headers, CORS, body limit and rate limiting
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log, handler.RespondPanic))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.NoRoute(handler.RespondNoRoute)
	engine.NoMethod(handler.RespondNoMethod)

	if h.System != nil {
		engine.GET("/health", h.System.Health)
		engine.GET("/api/v1/ping", h.System.Ping)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	if h.Livestock != nil {
		r.Register(LivestockRoutes(h.Livestock))
	}
	if h.User != nil {
		r.Register(UserRoutes(h.User))
	}
	r.Setup()

	return engine, nil
}

// NewRateLimiter returns the limiter configured by cfg, or nil when rate
// limiting is disabled
func NewRateLimiter(cfg config.HTTPConfig) *middleware.RateLimiter {
	if !cfg.RateLimitEnabled || cfg.RateLimitRequests <= 0 {
		return nil
	}
	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return middleware.NewRateLimiter(cfg.RateLimitRequests, window)
}

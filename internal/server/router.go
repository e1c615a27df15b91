// Package server assembles the HTTP router.
package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/teaching-scheduler-api/api/swagger"
	"github.com/noah-isme/teaching-scheduler-api/internal/handler"
	"github.com/noah-isme/teaching-scheduler-api/internal/middleware"
	"github.com/noah-isme/teaching-scheduler-api/pkg/config"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/teaching-scheduler-api/pkg/middleware/cors"
	ratelimitmiddleware "github.com/noah-isme/teaching-scheduler-api/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/noah-isme/teaching-scheduler-api/pkg/middleware/requestid"
	"github.com/noah-isme/teaching-scheduler-api/pkg/response"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Metrics   *handler.MetricsHandler
	Health    *handler.HealthHandler
	Teachers  *handler.TeacherHandler
	Calendar  *handler.CalendarHandler
	Dashboard *handler.DashboardHandler
	Tables    *handler.TableHandler
}

// Deps are the router dependencies.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Handlers Handlers
	Counter  middleware.RequestCounter
	Observer middleware.HTTPObserver
	// Verifier protects the table inspector. Nil leaves it open.
	Verifier middleware.TokenVerifier
}

// NewRouter builds the gin engine with the full middleware chain.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	if prefix == "/" {
		prefix = "/api"
	}
	metricsPaths := []string{prefix + "/metrics", "/metrics"}
	quietPaths := append([]string{"/health", "/ready"}, metricsPaths...)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log, quietPaths...))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Counter, deps.Observer, metricsPaths...))

	h := deps.Handlers
	r.GET("/health", h.Metrics.Live)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(prefix)
	api.GET("/metrics", h.Metrics.Exposition)
	api.GET("/health", h.Health.Health)

	data := api.Group("")
	data.Use(ratelimitmiddleware.Middleware(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	data.Use(middleware.WithResponseMeta())
	data.GET("/check-teachers", h.Teachers.Check)
	data.GET("/teachers", h.Teachers.List)
	data.GET("/calendar", h.Calendar.Week)
	data.GET("/calendar/export", h.Calendar.Export)
	data.GET("/dashboard/workload", h.Dashboard.Workload)

	tables := data.Group("/tables")
	if deps.Verifier != nil {
		tables.Use(middleware.JWT(deps.Verifier), middleware.RequireRoles(cfg.Tables.AllowedRoles...))
	}
	tables.GET("", h.Tables.List)
	tables.GET("/:name", h.Tables.Rows)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	return r
}

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

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/teaching-scheduler-api/internal/handler"
	"github.com/noah-isme/teaching-scheduler-api/internal/middleware"
	"github.com/noah-isme/teaching-scheduler-api/internal/repository"
	"github.com/noah-isme/teaching-scheduler-api/internal/server"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
	"github.com/noah-isme/teaching-scheduler-api/pkg/cache"
	"github.com/noah-isme/teaching-scheduler-api/pkg/config"
	"github.com/noah-isme/teaching-scheduler-api/pkg/database"
	"github.com/noah-isme/teaching-scheduler-api/pkg/host"
	"github.com/noah-isme/teaching-scheduler-api/pkg/logger"
)

// @title Teaching Scheduler API
// @version 0.1.0
// @description Teacher roster, weekly calendar and workload dashboard backed by Postgres
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	metricsSvc := service.NewMetricsService()
	store := repository.NewStore(db, logr, metricsSvc)
	defer store.Close() //nolint:errcheck
	if err := store.Connect(ctx); err != nil {
		logr.Warn("database unreachable, starting in offline mode", zap.Error(err))
	}
	metricsSvc.TrackDatabase(store.Status)

	cacheSvc := service.NewCacheService(newCacheRepository(ctx, cfg, logr), metricsSvc, cfg.Dashboard.CacheTTL, logr)
	defer func() {
		if err := cacheSvc.Close(); err != nil {
			logr.Warn("failed to close cache backend", zap.Error(err))
		}
	}()

	validate := validator.New()
	teacherRepo := repository.NewTeacherRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	teacherSvc := service.NewTeacherService(teacherRepo, store, validate, logr)
	calendarSvc := service.NewCalendarService(calendarRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Teachers: teacherRepo,
		Calendar: calendarRepo,
		Cache:    cacheSvc,
		Logger:   logr,
		Config:   service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	tableSvc := service.NewTableService(store, service.TableServiceConfig{
		Allowed: cfg.Tables.Allowed,
		ListRPC: cfg.Tables.ListRPC,
	}, validate, logr)

	probe := host.NewProbe()
	dbURL := cfg.Supabase.URL
	if dbURL == "" {
		dbURL = cfg.Database.URL
	}
	healthSvc := service.NewHealthService(store, probe, service.HealthServiceConfig{
		Version:     cfg.Version,
		Environment: cfg.Env,
		DatabaseURL: dbURL,
	}, logr)

	requestMetrics := service.NewRequestMetrics(probe)

	deps := server.Deps{
		Config: cfg,
		Logger: logr,
		Handlers: server.Handlers{
			Metrics:   handler.NewMetricsHandler(requestMetrics, metricsSvc.Handler(), store),
			Health:    handler.NewHealthHandler(healthSvc, logr),
			Teachers:  handler.NewTeacherHandler(teacherSvc),
			Calendar:  handler.NewCalendarHandler(calendarSvc),
			Dashboard: handler.NewDashboardHandler(dashboardSvc),
			Tables:    handler.NewTableHandler(tableSvc),
		},
		Counter:  requestMetrics,
		Observer: metricsSvc,
	}
	if verifier := service.NewTokenVerifier(cfg.Supabase.JWTSecret); verifier.Enabled() {
		deps.Verifier = middleware.TokenVerifier(verifier)
	} else {
		logr.Warn("SUPABASE_JWT_SECRET not set, table inspector is unauthenticated")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return store.Monitor(gctx, cfg.Database.MonitorInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logr.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newCacheRepository(ctx context.Context, cfg *config.Config, logr *zap.Logger) service.CacheRepository {
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err == nil {
			return repository.NewRedisCacheRepository(client, logr)
		}
		logr.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
	}
	return repository.NewMemoryCacheRepository(cfg.Dashboard.CacheTTL, 2*cfg.Dashboard.CacheTTL)
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

// WorkloadCacheKey is where the workload summary is cached.
const WorkloadCacheKey = "dash:workload"

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Teachers teacherRepository
	Calendar calendarRepository
	Cache    *CacheService
	Logger   *zap.Logger
	Config   DashboardServiceConfig
}

// DashboardService builds the workload dashboard from teacher and calendar rows.
type DashboardService struct {
	teachers teacherRepository
	calendar calendarRepository
	cache    *CacheService
	logger   *zap.Logger
	cfg      DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		teachers: params.Teachers,
		calendar: params.Calendar,
		cache:    params.Cache,
		logger:   logger,
		cfg:      cfg,
	}
}

// Workload returns the workload summary and whether it was served from cache.
// Teachers and calendar entries are fetched concurrently; either failure
// fails the whole call.
func (s *DashboardService) Workload(ctx context.Context) (*dto.WorkloadSummary, bool, error) {
	var cached dto.WorkloadSummary
	if s.cache.Get(ctx, WorkloadCacheKey, &cached) {
		return &cached, true, nil
	}

	var (
		teachers []models.Teacher
		entries  []models.CalendarEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teachers, err = s.teachers.List(gctx, models.TeacherFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.calendar.List(gctx, models.CalendarFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workload data")
	}

	summary := AggregateWorkload(teachers, entries)
	s.cache.Set(ctx, WorkloadCacheKey, summary, s.cfg.CacheTTL)
	s.logger.Debug("workload summary computed",
		zap.Int("teachers", summary.TeacherCount),
		zap.Int("entries", summary.EntryCount),
	)
	return &summary, false, nil
}

// InvalidateWorkload drops the cached summary.
func (s *DashboardService) InvalidateWorkload(ctx context.Context) error {
	return s.cache.Invalidate(ctx, WorkloadCacheKey)
}

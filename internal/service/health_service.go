package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/host"
)

const redactionMarker = "***"

// TimestampLayout is the ISO-8601 form used in health payloads.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DatabaseStatus is the part of the database collaborator health reporting depends on.
type DatabaseStatus interface {
	Status() models.ConnectionState
	Offline() bool
	LastError() error
	Ping(ctx context.Context) (bool, error)
}

// HostReader exposes process and host facts.
type HostReader interface {
	PID() int
	Uptime() time.Duration
	Memory() host.MemoryUsage
	Info() host.Info
}

// HealthOptions selects the optional parts of a health snapshot.
type HealthOptions struct {
	Detailed      bool `form:"detailed"`
	CheckDatabase bool `form:"checkDatabase"`
}

// HealthServiceConfig carries static values reported in every snapshot.
type HealthServiceConfig struct {
	Version     string
	Environment string
	DatabaseURL string
}

// HealthService assembles health snapshots on demand.
type HealthService struct {
	db     DatabaseStatus
	host   HostReader
	cfg    HealthServiceConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthService constructs a HealthService.
func NewHealthService(db DatabaseStatus, hostReader HostReader, cfg HealthServiceConfig, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{db: db, host: hostReader, cfg: cfg, logger: logger, now: time.Now}
}

// Check builds a snapshot. The database block always reflects the cached
// connection state; a live probe runs only when opts.CheckDatabase is set and
// its failure is reported inline. A panic while assembling is returned as an error.
func (s *HealthService) Check(ctx context.Context, opts HealthOptions) (resp *dto.HealthResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = panicError(r)
			s.logger.Error("health snapshot failed", zap.Error(err))
		}
	}()

	resp = &dto.HealthResponse{
		Status:      dto.HealthStatusOK,
		Timestamp:   s.Timestamp(),
		Version:     s.cfg.Version,
		Uptime:      s.host.Uptime().Seconds(),
		Environment: s.cfg.Environment,
		Database:    s.databaseBlock(),
	}

	if opts.CheckDatabase {
		s.probe(ctx, &resp.Database)
	}

	if opts.Detailed {
		info := s.host.Info()
		resp.System = &dto.SystemHealth{
			Platform:           info.Platform,
			Arch:               info.Arch,
			GoVersion:          info.GoVersion,
			Hostname:           info.Hostname,
			CPUs:               info.CPUs,
			TotalMemory:        info.TotalMemory,
			FreeMemory:         info.FreeMemory,
			MemoryUsagePercent: info.MemoryUsagePercent(),
			LoadAverage:        info.LoadAverage,
		}
		mem := s.host.Memory()
		resp.Process = &dto.ProcessHealth{
			PID: s.host.PID(),
			Memory: dto.ProcessMemory{
				RSS:       mem.RSS,
				HeapTotal: mem.HeapTotal,
				HeapUsed:  mem.HeapUsed,
				Sys:       mem.Sys,
			},
		}
		resp.Database.URL = RedactURL(s.cfg.DatabaseURL)
	}

	return resp, nil
}

// Timestamp returns the current time in the health payload format.
func (s *HealthService) Timestamp() string {
	return s.now().UTC().Format(TimestampLayout)
}

func (s *HealthService) databaseBlock() dto.DatabaseHealth {
	if s.db == nil {
		return dto.DatabaseHealth{Status: string(models.ConnectionDisconnected), Offline: true}
	}
	block := dto.DatabaseHealth{
		Status:  string(s.db.Status()),
		Offline: s.db.Offline(),
	}
	if lastErr := s.db.LastError(); lastErr != nil {
		block.LastError = appErrors.Message(lastErr)
	}
	return block
}

// probe runs the live ping. Errors and panics from the collaborator are
// captured into block and never escape.
func (s *HealthService) probe(ctx context.Context, block *dto.DatabaseHealth) {
	if s.db == nil {
		block.PingResult = dto.PingFailure
		return
	}

	ok, err := s.safePing(ctx)
	switch {
	case err != nil:
		block.PingResult = dto.PingError
		block.PingError = appErrors.Message(err)
		s.logger.Warn("database probe failed", zap.Error(err))
	case ok:
		block.PingResult = dto.PingSuccess
	default:
		block.PingResult = dto.PingFailure
	}

	// refresh the cached view after the probe updated it
	block.Status = string(s.db.Status())
	block.Offline = s.db.Offline()
	block.LastError = ""
	if lastErr := s.db.LastError(); lastErr != nil {
		block.LastError = appErrors.Message(lastErr)
	}
}

func (s *HealthService) safePing(ctx context.Context) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, panicError(r)
		}
	}()
	return s.db.Ping(ctx)
}

// RedactURL keeps the scheme and the first label of the host, replacing the
// rest with a marker. Credentials, port and path are dropped.
func RedactURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return redactionMarker
	}
	first := strings.SplitN(u.Hostname(), ".", 2)[0]
	if u.Scheme == "" {
		return first + "." + redactionMarker
	}
	return u.Scheme + "://" + first + "." + redactionMarker
}

func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

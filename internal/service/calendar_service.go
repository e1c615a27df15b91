package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/export"
)

type calendarRepository interface {
	List(ctx context.Context, filter models.CalendarFilter) ([]models.CalendarEntry, error)
}

// CalendarWeekRequest filters the weekly calendar.
type CalendarWeekRequest struct {
	Weekday string `form:"weekday" validate:"omitempty,weekday"`
}

// CalendarExportRequest selects the export encoding.
type CalendarExportRequest struct {
	Format  string `form:"format" validate:"omitempty,oneof=csv pdf"`
	Weekday string `form:"weekday" validate:"omitempty,weekday"`
}

var calendarExportHeaders = []string{"Weekday", "Start", "End", "Class", "Room", "Teacher 1", "Teacher 2", "Native"}

// CalendarService serves the weekly class calendar.
type CalendarService struct {
	repo      calendarRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCalendarService constructs the service.
func NewCalendarService(repo calendarRepository, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &CalendarService{repo: repo, validator: validate, logger: logger, now: time.Now}
	_ = svc.validator.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := canonicalWeekday(fl.Field().String())
		return ok
	})
	return svc
}

// Week returns entries grouped Monday through Sunday. Days without entries
// are kept so the week always renders fully; entries with an unrecognised
// weekday follow in first-seen order.
func (s *CalendarService) Week(ctx context.Context, req CalendarWeekRequest) (*dto.CalendarWeek, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calendar query")
	}
	entries, err := s.repo.List(ctx, models.CalendarFilter{Weekday: req.Weekday})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar")
	}
	return groupByWeekday(entries, req.Weekday), nil
}

// Export renders the calendar as CSV or PDF. CSV is the default.
func (s *CalendarService) Export(ctx context.Context, req CalendarExportRequest) (*dto.ExportFile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query")
	}
	format := export.Format(req.Format)
	if format == "" {
		format = export.FormatCSV
	}
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export format")
	}

	week, err := s.Week(ctx, CalendarWeekRequest{Weekday: req.Weekday})
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Title: "Teaching schedule", Headers: calendarExportHeaders}
	for _, day := range week.Days {
		for _, e := range day.Entries {
			data.Rows = append(data.Rows, []string{
				day.Weekday, e.StartTime, e.EndTime, e.ClassName,
				deref(e.Room), deref(e.Day1), deref(e.Day2), yesNo(bool(e.NativeTeacher)),
			})
		}
	}

	payload, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Debug("calendar exported", zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("calendar-%s.%s", s.now().Format("20060102"), format),
		ContentType: renderer.ContentType(),
		Data:        payload,
	}, nil
}

func groupByWeekday(entries []models.CalendarEntry, only string) *dto.CalendarWeek {
	week := &dto.CalendarWeek{Total: len(entries)}
	slots := make(map[string]int, len(models.Weekdays))
	for _, day := range models.Weekdays {
		if only != "" && !strings.EqualFold(only, day) {
			continue
		}
		slots[day] = len(week.Days)
		week.Days = append(week.Days, dto.CalendarDay{Weekday: day, Entries: []models.CalendarEntry{}})
	}

	for _, entry := range entries {
		day, ok := canonicalWeekday(entry.Weekday)
		if !ok {
			day = entry.Weekday
		}
		slot, exists := slots[day]
		if !exists {
			slot = len(week.Days)
			slots[day] = slot
			week.Days = append(week.Days, dto.CalendarDay{Weekday: day, Entries: []models.CalendarEntry{}})
		}
		week.Days[slot].Entries = append(week.Days[slot].Entries, entry)
	}
	return week
}

func canonicalWeekday(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, day := range models.Weekdays {
		if strings.EqualFold(day, value) {
			return day, true
		}
	}
	return "", false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

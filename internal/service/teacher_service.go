package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

// TeacherSampleSize is the number of rows returned by CheckSample.
const TeacherSampleSize = 3

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
}

// RowFetcher reads raw rows by table name.
type RowFetcher interface {
	FetchRows(ctx context.Context, table string, limit int) ([]models.Row, error)
}

// ListTeachersRequest is the query accepted by the teacher listing.
type ListTeachersRequest struct {
	Search string `form:"search" validate:"omitempty,max=100"`
	Type   string `form:"type" validate:"omitempty,max=50"`
}

// TeacherService serves teacher reads.
type TeacherService struct {
	repo      teacherRepository
	rows      RowFetcher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, rows RowFetcher, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, rows: rows, validator: validate, logger: logger}
}

// List returns teachers in fetch order.
func (s *TeacherService) List(ctx context.Context, req ListTeachersRequest) ([]models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher query")
	}
	teachers, err := s.repo.List(ctx, models.TeacherFilter{Search: req.Search, Type: req.Type})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, nil
}

// CheckSample reads a few raw teacher rows and the column names they carry.
// It is a connectivity and schema check, not a typed read.
func (s *TeacherService) CheckSample(ctx context.Context) (*dto.TeacherSampleResponse, error) {
	if s.rows == nil {
		return nil, appErrors.ErrDatabaseUnavailable
	}
	rows, err := s.rows.FetchRows(ctx, "teachers", TeacherSampleSize)
	if err != nil {
		s.logger.Warn("teacher sample query failed", zap.Error(err))
		return nil, err
	}
	if len(rows) > TeacherSampleSize {
		rows = rows[:TeacherSampleSize]
	}
	if rows == nil {
		rows = []models.Row{}
	}
	return &dto.TeacherSampleResponse{
		Success: true,
		Count:   len(rows),
		Sample:  rows,
		Columns: columnNames(rows),
	}, nil
}

func columnNames(rows []models.Row) []string {
	seen := make(map[string]struct{})
	columns := make([]string, 0)
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			columns = append(columns, k)
		}
	}
	sort.Strings(columns)
	return columns
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

// DefaultTableRowLimit applies when a rows request carries no limit.
const DefaultTableRowLimit = 50

// TableStore is the part of the database collaborator the inspector uses.
type TableStore interface {
	RowFetcher
	RPC(ctx context.Context, fn string, params map[string]interface{}) ([]models.Row, error)
}

// TableRowsRequest selects rows from one table.
type TableRowsRequest struct {
	Name  string `validate:"required,max=63"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

// TableServiceConfig configures which tables can be read.
type TableServiceConfig struct {
	Allowed []string
	ListRPC string
}

// TableService reads raw rows from allowlisted tables.
type TableService struct {
	store     TableStore
	allowed   []string
	allowSet  map[string]struct{}
	listRPC   string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTableService constructs a TableService.
func NewTableService(store TableStore, cfg TableServiceConfig, validate *validator.Validate, logger *zap.Logger) *TableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &TableService{
		store:     store,
		allowSet:  make(map[string]struct{}, len(cfg.Allowed)),
		listRPC:   cfg.ListRPC,
		validator: validate,
		logger:    logger,
	}
	for _, name := range cfg.Allowed {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := svc.allowSet[name]; dup {
			continue
		}
		svc.allowSet[name] = struct{}{}
		svc.allowed = append(svc.allowed, name)
	}
	return svc
}

// List returns the inspectable tables. When a listing function is
// configured its result is intersected with the allowlist.
func (s *TableService) List(ctx context.Context) (*dto.TableList, error) {
	if s.listRPC == "" {
		return &dto.TableList{Tables: append([]string{}, s.allowed...), Source: dto.TableSourceAllowlist}, nil
	}

	rows, err := s.store.RPC(ctx, s.listRPC, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tables")
	}
	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		name := tableNameFromRow(row)
		if _, ok := s.allowSet[strings.ToLower(name)]; ok {
			tables = append(tables, name)
		}
	}
	return &dto.TableList{Tables: tables, Source: dto.TableSourceRPC}, nil
}

// Rows returns up to req.Limit rows from an allowlisted table.
func (s *TableService) Rows(ctx context.Context, req TableRowsRequest) (*dto.TableRows, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid table query")
	}
	name := strings.ToLower(req.Name)
	if _, ok := s.allowSet[name]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("table %q is not inspectable", req.Name))
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultTableRowLimit
	}

	rows, err := s.store.FetchRows(ctx, name, limit)
	if err != nil {
		s.logger.Warn("table fetch failed", zap.String("table", name), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read table")
	}
	return &dto.TableRows{
		Table:   name,
		Count:   len(rows),
		Limit:   limit,
		Columns: columnNames(rows),
		Rows:    rows,
	}, nil
}

func tableNameFromRow(row models.Row) string {
	for _, key := range []string{"table_name", "name", "tablename"} {
		if v, ok := row[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

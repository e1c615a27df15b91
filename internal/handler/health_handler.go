package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/response"
)

type healthService interface {
	Check(ctx context.Context, opts service.HealthOptions) (*dto.HealthResponse, error)
	Timestamp() string
}

// HealthHandler serves the health snapshot.
type HealthHandler struct {
	service healthService
	logger  *zap.Logger
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(service healthService, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{service: service, logger: logger}
}

// Health godoc
// @Summary Service health snapshot
// @Tags Observability
// @Produce json
// @Param detailed query bool false "Include system and process blocks"
// @Param checkDatabase query bool false "Run a live database probe"
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.HealthErrorResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		if err != nil {
			h.logger.Error("health check failed", zap.Error(err))
			response.Raw(c, http.StatusInternalServerError, dto.HealthErrorResponse{
				Status:    dto.HealthStatusError,
				Error:     appErrors.Message(err),
				Timestamp: h.service.Timestamp(),
			})
		}
	}()

	opts := service.HealthOptions{
		Detailed:      queryBool(c, "detailed"),
		CheckDatabase: queryBool(c, "checkDatabase"),
	}
	var snapshot *dto.HealthResponse
	snapshot, err = h.service.Check(c.Request.Context(), opts)
	if err != nil {
		return
	}
	response.Raw(c, http.StatusOK, snapshot)
}

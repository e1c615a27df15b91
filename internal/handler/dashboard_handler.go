package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/middleware"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/response"
)

type dashboardService interface {
	Workload(ctx context.Context) (*dto.WorkloadSummary, bool, error)
	InvalidateWorkload(ctx context.Context) error
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Workload godoc
// @Summary Classes per teacher and native/non-native split
// @Tags Dashboard
// @Produce json
// @Param refresh query bool false "Drop the cached summary and recompute"
// @Success 200 {object} response.Envelope
// @Router /dashboard/workload [get]
func (h *DashboardHandler) Workload(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if queryBool(c, "refresh") {
		if err := h.service.InvalidateWorkload(c.Request.Context()); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to refresh workload cache"))
			return
		}
	}
	summary, cacheHit, err := h.service.Workload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}

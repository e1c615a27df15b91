package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/response"
)

type tableService interface {
	List(ctx context.Context) (*dto.TableList, error)
	Rows(ctx context.Context, req service.TableRowsRequest) (*dto.TableRows, error)
}

// TableHandler exposes the table inspector.
type TableHandler struct {
	service tableService
}

// NewTableHandler constructs the handler.
func NewTableHandler(service tableService) *TableHandler {
	return &TableHandler{service: service}
}

// List godoc
// @Summary List inspectable tables
// @Tags Tables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Rows godoc
// @Summary Read raw rows from an inspectable table
// @Tags Tables
// @Produce json
// @Security BearerAuth
// @Param name path string true "Table name"
// @Param limit query int false "Row limit (1-500, default 50)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tables/{name} [get]
func (h *TableHandler) Rows(c *gin.Context) {
	req := service.TableRowsRequest{Name: c.Param("name")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive number"))
			return
		}
		req.Limit = limit
	}
	rows, err := h.service.Rows(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
	"github.com/noah-isme/teaching-scheduler-api/pkg/response"
)

type calendarService interface {
	Week(ctx context.Context, req service.CalendarWeekRequest) (*dto.CalendarWeek, error)
	Export(ctx context.Context, req service.CalendarExportRequest) (*dto.ExportFile, error)
}

// CalendarHandler serves the weekly calendar.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// Week godoc
// @Summary Weekly calendar grouped by weekday
// @Tags Calendar
// @Produce json
// @Param weekday query string false "Restrict to one weekday"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) Week(c *gin.Context) {
	week, err := h.service.Week(c.Request.Context(), service.CalendarWeekRequest{
		Weekday: strings.TrimSpace(c.Query("weekday")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week)
}

// Export godoc
// @Summary Download the calendar
// @Tags Calendar
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param weekday query string false "Restrict to one weekday"
// @Success 200 {file} file
// @Router /calendar/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), service.CalendarExportRequest{
		Format:  strings.ToLower(strings.TrimSpace(c.Query("format"))),
		Weekday: strings.TrimSpace(c.Query("weekday")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

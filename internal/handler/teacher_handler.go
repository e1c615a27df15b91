package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
	"github.com/noah-isme/teaching-scheduler-api/pkg/response"
)

type teacherService interface {
	List(ctx context.Context, req service.ListTeachersRequest) ([]models.Teacher, error)
	CheckSample(ctx context.Context) (*dto.TeacherSampleResponse, error)
}

// TeacherHandler wires teacher services to HTTP routes.
type TeacherHandler struct {
	teachers teacherService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers teacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param search query string false "Case-insensitive name search"
// @Param type query string false "Teacher type, e.g. native"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	req := service.ListTeachersRequest{
		Search: strings.TrimSpace(c.Query("search")),
		Type:   strings.TrimSpace(c.Query("type")),
	}
	teachers, err := h.teachers.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, map[string]interface{}{"count": len(teachers)})
}

// Check godoc
// @Summary Sample raw teacher rows and their columns
// @Tags Teachers
// @Produce json
// @Success 200 {object} dto.TeacherSampleResponse
// @Failure 500 {object} dto.QueryErrorResponse
// @Router /check-teachers [get]
func (h *TeacherHandler) Check(c *gin.Context) {
	sample, err := h.teachers.CheckSample(c.Request.Context())
	if err != nil {
		response.Raw(c, http.StatusInternalServerError, dto.QueryErrorResponse{
			Error:   "Failed to fetch teachers",
			Details: appErrors.Message(err),
		})
		return
	}
	response.Raw(c, http.StatusOK, sample)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	"github.com/noah-isme/teaching-scheduler-api/internal/service"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

type fakeTeacherSrv struct {
	teachers  []models.Teacher
	listErr   error
	sample    *dto.TeacherSampleResponse
	sampleErr error
	lastReq   service.ListTeachersRequest
}

func (f *fakeTeacherSrv) List(_ context.Context, req service.ListTeachersRequest) ([]models.Teacher, error) {
	f.lastReq = req
	return f.teachers, f.listErr
}

func (f *fakeTeacherSrv) CheckSample(context.Context) (*dto.TeacherSampleResponse, error) {
	return f.sample, f.sampleErr
}

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestTeacherHandlerList(t *testing.T) {
	srv := &fakeTeacherSrv{teachers: []models.Teacher{{ID: "1", Name: "Ann", Type: "native"}}}
	c, rec := newTestContext("/api/teachers?search=%20ann%20&type=native")

	NewTeacherHandler(srv).List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ListTeachersRequest{Search: "ann", Type: "native"}, srv.lastReq)
	var body struct {
		Data []models.Teacher       `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Ann", body.Data[0].Name)
	assert.Equal(t, float64(1), body.Meta["count"])
}

func TestTeacherHandlerListError(t *testing.T) {
	srv := &fakeTeacherSrv{listErr: appErrors.Clone(appErrors.ErrValidation, "invalid teacher query")}
	c, rec := newTestContext("/api/teachers")

	NewTeacherHandler(srv).List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeacherHandlerCheck(t *testing.T) {
	srv := &fakeTeacherSrv{sample: &dto.TeacherSampleResponse{
		Success: true,
		Count:   1,
		Sample:  []models.Row{{"id": "1", "name": "Ann"}},
		Columns: []string{"id", "name"},
	}}
	c, rec := newTestContext("/api/check-teachers")

	NewTeacherHandler(srv).Check(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, []interface{}{"id", "name"}, body["columns"])
}

func TestTeacherHandlerCheckError(t *testing.T) {
	srv := &fakeTeacherSrv{sampleErr: errors.New(`relation "teachers" does not exist`)}
	c, rec := newTestContext("/api/check-teachers")

	NewTeacherHandler(srv).Check(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body dto.QueryErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch teachers", body.Error)
	assert.Equal(t, `relation "teachers" does not exist`, body.Details)
}

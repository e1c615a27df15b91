package dto

import "github.com/noah-isme/teaching-scheduler-api/internal/models"

// TeacherSampleResponse is the /api/check-teachers payload.
type TeacherSampleResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Sample  []models.Row `json:"sample"`
	Columns []string     `json:"columns"`
}

// QueryErrorResponse is returned by raw endpoints when the backing query fails.
type QueryErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

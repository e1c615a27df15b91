package dto

import "github.com/noah-isme/teaching-scheduler-api/internal/models"

// CalendarWeek is the weekly calendar grouped by weekday.
type CalendarWeek struct {
	Days  []CalendarDay `json:"days"`
	Total int           `json:"total"`
}

// CalendarDay holds the entries of one weekday ordered by start time.
type CalendarDay struct {
	Weekday string                 `json:"weekday"`
	Entries []models.CalendarEntry `json:"entries"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
)

// CalendarRepository reads weekly class slots.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository constructs a calendar repository.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// List returns calendar entries ordered by start time.
func (r *CalendarRepository) List(ctx context.Context, filter models.CalendarFilter) ([]models.CalendarEntry, error) {
	query := `SELECT id, class_name, weekday, start_time, end_time, room, day1, day2, native_teacher, created_at FROM calendar`
	var args []interface{}
	if filter.Weekday != "" {
		query += " WHERE LOWER(weekday) = LOWER($1)"
		args = append(args, filter.Weekday)
	}
	query += " ORDER BY start_time ASC, id ASC"

	entries := make([]models.CalendarEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list calendar entries: %w", err)
	}
	return entries, nil
}

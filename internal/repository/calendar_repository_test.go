package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
)

var calendarColumns = []string{"id", "class_name", "weekday", "start_time", "end_time", "room", "day1", "day2", "native_teacher", "created_at"}

func TestCalendarRepositoryList(t *testing.T) {
	db, mock, cleanup := newTeacherRepoMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	rows := sqlmock.NewRows(calendarColumns).
		AddRow("c1", "A1", "Monday", "09:00", "10:00", nil, "Ann", nil, true, time.Now()).
		AddRow("c2", "B2", "Monday", "10:00", "11:00", "R1", "Ben", "Cat", "FALSE", time.Now()).
		AddRow("c3", "C3", "Tuesday", "11:00", "12:00", nil, nil, nil, "True", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM calendar ORDER BY start_time ASC, id ASC")).WillReturnRows(rows)

	entries, err := repo.List(context.Background(), models.CalendarFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, bool(entries[0].NativeTeacher))
	assert.False(t, bool(entries[1].NativeTeacher))
	assert.True(t, bool(entries[2].NativeTeacher))
	assert.Equal(t, []string{"Ben", "Cat"}, entries[1].AssignedTeachers())
	assert.Empty(t, entries[2].AssignedTeachers())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarRepositoryListByWeekday(t *testing.T) {
	db, mock, cleanup := newTeacherRepoMock(t)
	defer cleanup()
	repo := NewCalendarRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM calendar WHERE LOWER(weekday) = LOWER($1) ORDER BY start_time ASC, id ASC")).
		WithArgs("friday").
		WillReturnRows(sqlmock.NewRows(calendarColumns))

	entries, err := repo.List(context.Background(), models.CalendarFilter{Weekday: "friday"})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

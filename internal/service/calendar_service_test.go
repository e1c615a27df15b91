package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

type mockCalendarRepo struct {
	entries    []models.CalendarEntry
	err        error
	lastFilter models.CalendarFilter
}

func (m *mockCalendarRepo) List(_ context.Context, filter models.CalendarFilter) ([]models.CalendarEntry, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func calendarFixture() []models.CalendarEntry {
	return []models.CalendarEntry{
		{ID: "1", ClassName: "5A", Weekday: "monday", StartTime: "08:00", EndTime: "09:00", Day1: strPtr("Ann")},
		{ID: "2", ClassName: "6B", Weekday: "Wednesday", StartTime: "09:00", EndTime: "10:00", NativeTeacher: true, Room: strPtr("R1")},
		{ID: "3", ClassName: "7C", Weekday: "Monday", StartTime: "10:00", EndTime: "11:00"},
		{ID: "4", ClassName: "Club", Weekday: "Holiday", StartTime: "12:00", EndTime: "13:00"},
	}
}

func TestCalendarServiceWeekGroupsByWeekday(t *testing.T) {
	svc := NewCalendarService(&mockCalendarRepo{entries: calendarFixture()}, nil, nil)

	week, err := svc.Week(context.Background(), CalendarWeekRequest{})
	require.NoError(t, err)

	require.Len(t, week.Days, 8)
	assert.Equal(t, 4, week.Total)
	assert.Equal(t, "Monday", week.Days[0].Weekday)
	require.Len(t, week.Days[0].Entries, 2)
	assert.Equal(t, "1", week.Days[0].Entries[0].ID)
	assert.Equal(t, "3", week.Days[0].Entries[1].ID)
	assert.Empty(t, week.Days[1].Entries)
	assert.Len(t, week.Days[2].Entries, 1)
	assert.Equal(t, "Sunday", week.Days[6].Weekday)
	assert.Equal(t, "Holiday", week.Days[7].Weekday)
}

func TestCalendarServiceWeekFilter(t *testing.T) {
	repo := &mockCalendarRepo{entries: calendarFixture()[:1]}
	svc := NewCalendarService(repo, nil, nil)

	week, err := svc.Week(context.Background(), CalendarWeekRequest{Weekday: "MONDAY"})
	require.NoError(t, err)
	require.Len(t, week.Days, 1)
	assert.Equal(t, "Monday", week.Days[0].Weekday)
	assert.Equal(t, "MONDAY", repo.lastFilter.Weekday)
}

func TestCalendarServiceWeekValidation(t *testing.T) {
	svc := NewCalendarService(&mockCalendarRepo{}, nil, nil)

	_, err := svc.Week(context.Background(), CalendarWeekRequest{Weekday: "Someday"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCalendarServiceWeekRepoError(t *testing.T) {
	svc := NewCalendarService(&mockCalendarRepo{err: errors.New("db down")}, nil, nil)

	_, err := svc.Week(context.Background(), CalendarWeekRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCalendarServiceExportCSV(t *testing.T) {
	svc := NewCalendarService(&mockCalendarRepo{entries: calendarFixture()}, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) }

	file, err := svc.Export(context.Background(), CalendarExportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "calendar-20240506.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Weekday,Start,End,Class,Room,Teacher 1,Teacher 2,Native", lines[0])
	assert.Equal(t, "Monday,08:00,09:00,5A,,Ann,,no", lines[1])
	assert.Equal(t, "Wednesday,09:00,10:00,6B,R1,,,yes", lines[3])
}

func TestCalendarServiceExportPDF(t *testing.T) {
	svc := NewCalendarService(&mockCalendarRepo{entries: calendarFixture()}, nil, nil)

	file, err := svc.Export(context.Background(), CalendarExportRequest{Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestCalendarServiceExportRejectsFormat(t *testing.T) {
	svc := NewCalendarService(&mockCalendarRepo{}, nil, nil)

	_, err := svc.Export(context.Background(), CalendarExportRequest{Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

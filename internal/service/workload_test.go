package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestAggregateWorkload(t *testing.T) {
	teachers := []models.Teacher{{Name: "A", Type: "native"}, {Name: "B", Type: "local"}}
	entries := []models.CalendarEntry{
		{NativeTeacher: true},
		{NativeTeacher: false, Day1: strPtr("B")},
		{NativeTeacher: false, Day1: strPtr("C")},
	}

	summary := AggregateWorkload(teachers, entries)

	assert.Equal(t, map[string]int{"A": 1, "B": 1}, summary.Counts())
	assert.Equal(t, dto.ClassTypeSplit{Native: 1, NonNative: 2}, summary.ClassTypes)
	assert.Equal(t, 2, summary.TeacherCount)
	assert.Equal(t, 3, summary.EntryCount)
}

func TestAggregateWorkloadEmptyEntries(t *testing.T) {
	teachers := []models.Teacher{{Name: "Zed", Type: "Native"}, {Name: "Amy", Type: "local"}}

	summary := AggregateWorkload(teachers, nil)

	require.Len(t, summary.Teachers, 2)
	assert.Equal(t, "Zed", summary.Teachers[0].Name)
	assert.Equal(t, "Amy", summary.Teachers[1].Name)
	assert.Zero(t, summary.Teachers[0].Classes)
	assert.Zero(t, summary.Teachers[1].Classes)
	assert.Equal(t, dto.ClassTypeSplit{}, summary.ClassTypes)
	assert.Zero(t, summary.EntryCount)
}

func TestAggregateWorkloadCreditsEveryNativeTeacher(t *testing.T) {
	teachers := []models.Teacher{
		{Name: "A", Type: "NATIVE"},
		{Name: "B", Type: "native"},
		{Name: "C", Type: "local"},
	}
	entries := []models.CalendarEntry{
		{NativeTeacher: true, Day1: strPtr("A")},
		{NativeTeacher: true},
		{Day1: strPtr("C"), Day2: strPtr("A")},
		{Day1: strPtr(""), Day2: strPtr("c")},
	}

	summary := AggregateWorkload(teachers, entries)

	assert.Equal(t, map[string]int{"A": 3, "B": 2, "C": 1}, summary.Counts())
	assert.Equal(t, dto.ClassTypeSplit{Native: 2, NonNative: 2}, summary.ClassTypes)
}

func TestAggregateWorkloadStringFlags(t *testing.T) {
	var entries []models.CalendarEntry
	raw := `[{"native_teacher":"TRUE"},{"native_teacher":"yes","day1":"B"},{"native_teacher":true},{"native_teacher":"false","day2":"B"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	teachers := []models.Teacher{{Name: "A", Type: "native"}, {Name: "B", Type: "local"}}

	summary := AggregateWorkload(teachers, entries)

	assert.Equal(t, map[string]int{"A": 2, "B": 2}, summary.Counts())
	assert.Equal(t, dto.ClassTypeSplit{Native: 2, NonNative: 2}, summary.ClassTypes)
}

func TestAggregateWorkloadIsRepeatable(t *testing.T) {
	teachers := []models.Teacher{{Name: "A", Type: "native"}}
	entries := []models.CalendarEntry{{NativeTeacher: true}, {Day1: strPtr("A")}}

	first := AggregateWorkload(teachers, entries)
	second := AggregateWorkload(teachers, entries)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.Teachers[0].Classes)
}

func TestAggregateWorkloadDuplicateNames(t *testing.T) {
	teachers := []models.Teacher{{Name: "A", Type: "local"}, {Name: "A", Type: "local"}}
	entries := []models.CalendarEntry{{Day1: strPtr("A")}}

	summary := AggregateWorkload(teachers, entries)

	require.Len(t, summary.Teachers, 1)
	assert.Equal(t, 1, summary.Teachers[0].Classes)
	assert.Equal(t, 2, summary.TeacherCount)
}

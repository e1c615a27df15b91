package service

import (
	"github.com/noah-isme/teaching-scheduler-api/internal/dto"
	"github.com/noah-isme/teaching-scheduler-api/internal/models"
)

// AggregateWorkload folds calendar entries into per-teacher class counts and
// a native/non-native split. Teachers keep their input order; a repeated name
// shares the first occurrence's slot.
//
// A native-led entry credits every native teacher, not only the one who led
// the class. Other entries credit Day1/Day2 names that exactly match a known
// teacher; unknown names are ignored.
func AggregateWorkload(teachers []models.Teacher, entries []models.CalendarEntry) dto.WorkloadSummary {
	summary := dto.WorkloadSummary{
		Teachers:     make([]dto.TeacherWorkload, 0, len(teachers)),
		TeacherCount: len(teachers),
		EntryCount:   len(entries),
	}

	index := make(map[string]int, len(teachers))
	var natives []int
	for _, t := range teachers {
		slot, seen := index[t.Name]
		if !seen {
			slot = len(summary.Teachers)
			index[t.Name] = slot
			summary.Teachers = append(summary.Teachers, dto.TeacherWorkload{Name: t.Name, Type: t.Type})
		}
		if t.IsNative() {
			natives = append(natives, slot)
		}
	}

	for _, entry := range entries {
		if entry.NativeTeacher {
			summary.ClassTypes.Native++
			for _, slot := range natives {
				summary.Teachers[slot].Classes++
			}
			continue
		}

		summary.ClassTypes.NonNative++
		for _, name := range entry.AssignedTeachers() {
			if slot, ok := index[name]; ok {
				summary.Teachers[slot].Classes++
			}
		}
	}

	return summary
}

package dto

// WorkloadSummary is the chart-ready roll-up of calendar entries per teacher.
type WorkloadSummary struct {
	Teachers     []TeacherWorkload `json:"teachers"`
	ClassTypes   ClassTypeSplit    `json:"classTypes"`
	TeacherCount int               `json:"teacherCount"`
	EntryCount   int               `json:"entryCount"`
}

// TeacherWorkload is the class count credited to one teacher.
type TeacherWorkload struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Classes int    `json:"classes"`
}

// ClassTypeSplit counts native-led and other classes.
type ClassTypeSplit struct {
	Native    int `json:"native"`
	NonNative int `json:"nonNative"`
}

// Counts returns the per-teacher counts keyed by name.
func (s WorkloadSummary) Counts() map[string]int {
	counts := make(map[string]int, len(s.Teachers))
	for _, t := range s.Teachers {
		counts[t.Name] = t.Classes
	}
	return counts
}

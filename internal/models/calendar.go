package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekdays lists calendar days in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// CalendarEntry is one weekly class slot.
type CalendarEntry struct {
	ID            string    `db:"id" json:"id"`
	ClassName     string    `db:"class_name" json:"class_name"`
	Weekday       string    `db:"weekday" json:"weekday"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	Room          *string   `db:"room" json:"room,omitempty"`
	Day1          *string   `db:"day1" json:"day1,omitempty"`
	Day2          *string   `db:"day2" json:"day2,omitempty"`
	NativeTeacher FlexBool  `db:"native_teacher" json:"native_teacher"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// AssignedTeachers returns the non-empty teacher names from Day1 and Day2.
func (e CalendarEntry) AssignedTeachers() []string {
	names := make([]string, 0, 2)
	for _, name := range []*string{e.Day1, e.Day2} {
		if name != nil && *name != "" {
			names = append(names, *name)
		}
	}
	return names
}

// CalendarFilter narrows down entries.
type CalendarFilter struct {
	Weekday string
}

// FlexBool accepts booleans stored either as real booleans or as strings.
// Strings count as true only when their lower-cased form is "true".
type FlexBool bool

// ParseFlexBool converts a loosely typed value into a FlexBool.
func ParseFlexBool(value interface{}) FlexBool {
	switch v := value.(type) {
	case bool:
		return FlexBool(v)
	case string:
		return FlexBool(strings.ToLower(v) == "true")
	case []byte:
		return FlexBool(strings.ToLower(string(v)) == "true")
	default:
		return false
	}
}

// Scan implements sql.Scanner.
func (b *FlexBool) Scan(src interface{}) error {
	switch src.(type) {
	case nil, bool, string, []byte:
		*b = ParseFlexBool(src)
		return nil
	default:
		return fmt.Errorf("flexbool: unsupported type %T", src)
	}
}

// Value implements driver.Valuer.
func (b FlexBool) Value() (driver.Value, error) {
	return bool(b), nil
}

// UnmarshalJSON accepts true/false or a string.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = ParseFlexBool(raw)
	return nil
}

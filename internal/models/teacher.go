package models

import (
	"strings"
	"time"
)

// TeacherTypeNative marks teachers credited with native-led classes.
const TeacherTypeNative = "native"

// Teacher represents an instructor record. Name is the join key used by calendar entries.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Email     *string   `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsNative reports whether the teacher type is "native", ignoring case.
func (t Teacher) IsNative() bool {
	return strings.EqualFold(t.Type, TeacherTypeNative)
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search string
	Type   string
}

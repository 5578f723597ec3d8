package models

import (
	"database/sql"
	"time"
)

// DefaultScheduleDuration is applied when a class is booked without an explicit length.
const DefaultScheduleDuration = 60

// Schedule is a class booked for a student.
type Schedule struct {
	ID              int64     `db:"id" json:"id"`
	StudentID       int64     `db:"student_id" json:"student_id"`
	ScheduledAt     time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Notes           string    `db:"notes" json:"notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ScheduleStudent is the joined slice of the referenced student.
type ScheduleStudent struct {
	Name string `json:"name"`
}

// ScheduleDetail is a schedule row joined with its student's name.
// Student is nil when the referenced student no longer exists.
type ScheduleDetail struct {
	Schedule
	StudentName *string          `db:"student_name" json:"-"`
	Student     *ScheduleStudent `db:"-" json:"student"`
}

// NewScheduleInput carries the raw values for a schedule insert. Every field is passed to
// the store as written so it applies its own column types; a StudentID that is not Valid inserts NULL.
type NewScheduleInput struct {
	StudentID       sql.NullString
	ScheduledAt     string
	DurationMinutes string
	Notes           string
}

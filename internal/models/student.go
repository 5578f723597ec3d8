package models

import "time"

// StudentStatus is the enrolment state of a student.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "Ativo"
	StudentStatusInactive StudentStatus = "Inativo"
	StudentStatusTrial    StudentStatus = "Experimental"
)

// Student represents a person enrolled at the studio.
type Student struct {
	ID        int64         `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	Phone     string        `db:"phone" json:"phone"`
	Status    StudentStatus `db:"status" json:"status"`
	Plan      string        `db:"plan" json:"plan"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// StudentChanges lists the mutable student columns; nil fields are left untouched.
type StudentChanges struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *StudentStatus
	Plan   *string
}

// Empty reports whether no field is set.
func (c StudentChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Phone == nil && c.Status == nil && c.Plan == nil
}

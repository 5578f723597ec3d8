// Package memory provides in-process table stores with the same ordering, defaults and
// constraint behaviour as the Postgres repositories. It backs end-to-end tests.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/noah-isme/studio-api/internal/models"
)

// DB holds the three tables behind one lock so schedule listings can join students.
type DB struct {
	mu           sync.Mutex
	now          func() time.Time
	nextID       map[string]int64
	students     map[int64]models.Student
	schedules    map[int64]models.Schedule
	transactions map[int64]models.Transaction
	failures     map[string]error
}

// New returns an empty store.
func New() *DB {
	return &DB{
		now:          time.Now,
		nextID:       map[string]int64{},
		students:     map[int64]models.Student{},
		schedules:    map[int64]models.Schedule{},
		transactions: map[int64]models.Transaction{},
		failures:     map[string]error{},
	}
}

// SetClock overrides the timestamp source used for created_at.
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

// Fail makes every operation on table return err until cleared with a nil err.
func (db *DB) Fail(table string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, table)
		return
	}
	db.failures[table] = err
}

func (db *DB) id(table string) int64 {
	db.nextID[table]++
	return db.nextID[table]
}

// Students returns a repository over the students table.
func (db *DB) Students() *StudentStore { return &StudentStore{db: db} }

// Schedules returns a repository over the schedules table.
func (db *DB) Schedules() *ScheduleStore { return &ScheduleStore{db: db} }

// Transactions returns a repository over the transactions table.
func (db *DB) Transactions() *TransactionStore { return &TransactionStore{db: db} }

func checkViolation(table, column string) error {
	return fmt.Errorf(`new row for relation "%s" violates check constraint "%s_%s_check"`, table, table, column)
}

func notNullViolation(table, column string) error {
	return fmt.Errorf(`null value in column "%s" of relation "%s" violates not-null constraint`, column, table)
}

// StudentStore mirrors repository.StudentRepository.
type StudentStore struct{ db *DB }

func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["students"]; err != nil {
		return nil, err
	}
	out := make([]models.Student, 0, len(s.db.students))
	for _, st := range s.db.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *StudentStore) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["students"]; err != nil {
		return nil, err
	}
	if !validStudentStatus(student.Status) {
		return nil, checkViolation("students", "status")
	}
	student.ID = s.db.id("students")
	student.CreatedAt = s.db.now().UTC()
	s.db.students[student.ID] = student
	return &student, nil
}

func (s *StudentStore) Update(ctx context.Context, id int64, changes models.StudentChanges) (*models.Student, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["students"]; err != nil {
		return nil, err
	}
	st, ok := s.db.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if changes.Name != nil {
		st.Name = *changes.Name
	}
	if changes.Email != nil {
		st.Email = *changes.Email
	}
	if changes.Phone != nil {
		st.Phone = *changes.Phone
	}
	if changes.Status != nil {
		if !validStudentStatus(*changes.Status) {
			return nil, checkViolation("students", "status")
		}
		st.Status = *changes.Status
	}
	if changes.Plan != nil {
		st.Plan = *changes.Plan
	}
	s.db.students[id] = st
	return &st, nil
}

func (s *StudentStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["students"]; err != nil {
		return 0, err
	}
	if _, ok := s.db.students[id]; !ok {
		return 0, nil
	}
	// Schedules keep their student_id; the join simply stops matching.
	delete(s.db.students, id)
	return 1, nil
}

func validStudentStatus(s models.StudentStatus) bool {
	switch s {
	case models.StudentStatusActive, models.StudentStatusInactive, models.StudentStatusTrial:
		return true
	}
	return false
}

// ScheduleStore mirrors repository.ScheduleRepository.
type ScheduleStore struct{ db *DB }

var scheduleLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

func (s *ScheduleStore) List(ctx context.Context) ([]models.ScheduleDetail, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["schedules"]; err != nil {
		return nil, err
	}
	out := make([]models.ScheduleDetail, 0, len(s.db.schedules))
	for _, sc := range s.db.schedules {
		detail := models.ScheduleDetail{Schedule: sc}
		if st, ok := s.db.students[sc.StudentID]; ok {
			name := st.Name
			detail.StudentName = &name
			detail.Student = &models.ScheduleStudent{Name: name}
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *ScheduleStore) Create(ctx context.Context, in models.NewScheduleInput) (*models.Schedule, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["schedules"]; err != nil {
		return nil, err
	}
	var studentID int64
	if in.StudentID.Valid {
		id, err := strconv.ParseInt(in.StudentID.String, 10, 64)
		if err != nil {
			return nil, fmt.Errorf(`invalid input syntax for type bigint: "%s"`, in.StudentID.String)
		}
		studentID = id
	}
	at, err := parseTimestamp(in.ScheduledAt)
	if err != nil {
		return nil, err
	}
	duration, err := strconv.Atoi(in.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf(`invalid input syntax for type integer: "%s"`, in.DurationMinutes)
	}
	if !in.StudentID.Valid {
		return nil, notNullViolation("schedules", "student_id")
	}
	sc := models.Schedule{
		ID:              s.db.id("schedules"),
		StudentID:       studentID,
		ScheduledAt:     at,
		DurationMinutes: duration,
		Notes:           in.Notes,
		CreatedAt:       s.db.now().UTC(),
	}
	s.db.schedules[sc.ID] = sc
	return &sc, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(`invalid input syntax for type timestamp with time zone: "%s"`, raw)
}

// TransactionStore mirrors repository.TransactionRepository.
type TransactionStore struct{ db *DB }

func (s *TransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["transactions"]; err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(s.db.transactions))
	for _, t := range s.db.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate.Time) {
			return out[i].DueDate.Before(out[j].DueDate.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *TransactionStore) Create(ctx context.Context, in models.NewTransactionInput) (*models.Transaction, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["transactions"]; err != nil {
		return nil, err
	}
	if in.Type != models.TransactionIncome && in.Type != models.TransactionExpense {
		return nil, checkViolation("transactions", "type")
	}
	if !validTransactionStatus(in.Status) {
		return nil, checkViolation("transactions", "status")
	}
	due, err := models.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf(`invalid input syntax for type date: "%s"`, in.DueDate)
	}
	t := models.Transaction{
		ID:          s.db.id("transactions"),
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		DueDate:     due,
		Status:      in.Status,
		CreatedAt:   s.db.now().UTC(),
	}
	s.db.transactions[t.ID] = t
	return &t, nil
}

func (s *TransactionStore) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["transactions"]; err != nil {
		return nil, err
	}
	t, ok := s.db.transactions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if !validTransactionStatus(status) {
		return nil, checkViolation("transactions", "status")
	}
	t.Status = status
	s.db.transactions[id] = t
	return &t, nil
}

func (s *TransactionStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failures["transactions"]; err != nil {
		return 0, err
	}
	if _, ok := s.db.transactions[id]; !ok {
		return 0, nil
	}
	delete(s.db.transactions, id)
	return 1, nil
}

func validTransactionStatus(s models.TransactionStatus) bool {
	return s == models.TransactionPending || s == models.TransactionPaid
}

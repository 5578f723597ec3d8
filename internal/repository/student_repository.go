package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studio-api/internal/models"
)

const studentColumns = "id, name, email, phone, status, plan, created_at"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB, metrics QueryObserver) *StudentRepository {
	return &StudentRepository{db: db, metrics: metrics}
}

// List returns every student, newest first.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	defer observe(r.metrics, "students.list", time.Now())
	query := "SELECT " + studentColumns + " FROM students ORDER BY created_at DESC, id DESC"
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a single student.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	defer observe(r.metrics, "students.find", time.Now())
	query := "SELECT " + studentColumns + " FROM students WHERE id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Create inserts a student and returns the stored row with its assigned id and timestamp.
func (r *StudentRepository) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	defer observe(r.metrics, "students.create", time.Now())
	query := `INSERT INTO students (name, email, phone, status, plan)
        VALUES ($1, $2, $3, $4, $5) RETURNING ` + studentColumns
	var created models.Student
	if err := r.db.GetContext(ctx, &created, query, student.Name, student.Email, student.Phone, student.Status, student.Plan); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return &created, nil
}

// Update writes only the provided fields and returns the resulting row.
// With no fields set it returns the current row unchanged.
func (r *StudentRepository) Update(ctx context.Context, id int64, changes models.StudentChanges) (*models.Student, error) {
	if changes.Empty() {
		return r.FindByID(ctx, id)
	}
	defer observe(r.metrics, "students.update", time.Now())

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if changes.Name != nil {
		add("name", *changes.Name)
	}
	if changes.Email != nil {
		add("email", *changes.Email)
	}
	if changes.Phone != nil {
		add("phone", *changes.Phone)
	}
	if changes.Status != nil {
		add("status", *changes.Status)
	}
	if changes.Plan != nil {
		add("plan", *changes.Plan)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE students SET %s WHERE id = $%d RETURNING %s", strings.Join(sets, ", "), len(args), studentColumns)
	var updated models.Student
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return &updated, nil
}

// Delete removes a student row and reports how many rows matched.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	defer observe(r.metrics, "students.delete", time.Now())
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete student rows affected: %w", err)
	}
	return affected, nil
}

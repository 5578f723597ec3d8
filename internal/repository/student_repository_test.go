package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/models"
)

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var studentRowColumns = []string{"id", "name", "email", "phone", "status", "plan", "created_at"}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	obs := &recordingObserver{}
	repo := NewStudentRepository(db, obs)

	now := time.Now()
	rows := sqlmock.NewRows(studentRowColumns).
		AddRow(2, "Bia", "b@x.com", "222", "Ativo", "Mensal", now).
		AddRow(1, "Ana", "a@x.com", "111", "Experimental", "Avulso", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone, status, plan, created_at FROM students ORDER BY created_at DESC, id DESC")).
		WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, int64(2), students[0].ID)
	assert.Equal(t, models.StudentStatusTrial, students[1].Status)
	assert.Equal(t, []string{"students.list"}, obs.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListEmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery("SELECT .* FROM students").WillReturnRows(sqlmock.NewRows(studentRowColumns))

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery("INSERT INTO students \\(name, email, phone, status, plan\\)").
		WithArgs("Ana", "a@x.com", "111", models.StudentStatusActive, "Mensal").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow(7, "Ana", "a@x.com", "111", "Ativo", "Mensal", time.Now()))

	created, err := repo.Create(context.Background(), models.Student{Name: "Ana", Email: "a@x.com", Phone: "111", Status: models.StudentStatusActive, Plan: "Mensal"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdatePartial(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	status := models.StudentStatusInactive
	plan := "Anual"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE students SET status = $1, plan = $2 WHERE id = $3 RETURNING id, name, email, phone, status, plan, created_at")).
		WithArgs(status, plan, int64(3)).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow(3, "Ana", "a@x.com", "111", "Inativo", "Anual", time.Now()))

	updated, err := repo.Update(context.Background(), 3, models.StudentChanges{Status: &status, Plan: &plan})
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusInactive, updated.Status)
	assert.Equal(t, "Anual", updated.Plan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateWithoutChangesReads(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone, status, plan, created_at FROM students WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow(3, "Ana", "a@x.com", "111", "Ativo", "Mensal", time.Now()))

	student, err := repo.Update(context.Background(), 3, models.StudentChanges{})
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	name := "Novo"
	mock.ExpectQuery("UPDATE students SET name = \\$1 WHERE id = \\$2").
		WithArgs(name, int64(99)).
		WillReturnRows(sqlmock.NewRows(studentRowColumns))

	_, err := repo.Update(context.Background(), 99, models.StudentChanges{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteRowsAffectedError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	resultErr := errors.New("driver: rows affected unavailable")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewErrorResult(resultErr))

	_, err := repo.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, resultErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

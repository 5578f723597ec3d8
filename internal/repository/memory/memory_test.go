package memory

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/models"
)

func TestStudentsNewestFirst(t *testing.T) {
	db := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	db.SetClock(func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Hour) })
	students := db.Students()
	ctx := context.Background()

	for _, name := range []string{"Ana", "Bia", "Caio"} {
		_, err := students.Create(ctx, models.Student{Name: name, Status: models.StudentStatusActive})
		require.NoError(t, err)
	}
	list, err := students.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Caio", list[0].Name)
	assert.Equal(t, "Ana", list[2].Name)
}

func TestStudentConstraintsAndMissingRows(t *testing.T) {
	students := New().Students()
	ctx := context.Background()

	_, err := students.Create(ctx, models.Student{Name: "Ana", Status: "Ghost"})
	assert.EqualError(t, err, `new row for relation "students" violates check constraint "students_status_check"`)

	_, err = students.Update(ctx, 99, models.StudentChanges{})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	affected, err := students.Delete(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSchedulesJoinAndOrder(t *testing.T) {
	db := New()
	ctx := context.Background()
	ana, err := db.Students().Create(ctx, models.Student{Name: "Ana", Status: models.StudentStatusActive})
	require.NoError(t, err)

	_, err = db.Schedules().Create(ctx, models.NewScheduleInput{StudentID: studentRef(ana.ID), ScheduledAt: "2024-05-02T10:00", DurationMinutes: "60"})
	require.NoError(t, err)
	_, err = db.Schedules().Create(ctx, models.NewScheduleInput{StudentID: studentRef(42), ScheduledAt: "2024-05-01T08:00:00Z", DurationMinutes: "45"})
	require.NoError(t, err)

	list, err := db.Schedules().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Student)
	require.NotNil(t, list[1].Student)
	assert.Equal(t, "Ana", list[1].Student.Name)

	_, err = db.Schedules().Create(ctx, models.NewScheduleInput{StudentID: studentRef(ana.ID), ScheduledAt: "amanhã", DurationMinutes: "60"})
	assert.Error(t, err)
}

func TestScheduleColumnTypes(t *testing.T) {
	schedules := New().Schedules()
	ctx := context.Background()

	_, err := schedules.Create(ctx, models.NewScheduleInput{ScheduledAt: "2024-05-02T10:00", DurationMinutes: "60"})
	assert.EqualError(t, err, `null value in column "student_id" of relation "schedules" violates not-null constraint`)

	_, err = schedules.Create(ctx, models.NewScheduleInput{StudentID: studentRef(1), ScheduledAt: "2024-05-02T10:00", DurationMinutes: "45.5"})
	assert.EqualError(t, err, `invalid input syntax for type integer: "45.5"`)

	_, err = schedules.Create(ctx, models.NewScheduleInput{StudentID: sql.NullString{String: "abc", Valid: true}, ScheduledAt: "2024-05-02T10:00", DurationMinutes: "60"})
	assert.EqualError(t, err, `invalid input syntax for type bigint: "abc"`)

	list, err := schedules.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func studentRef(id int64) sql.NullString {
	return sql.NullString{String: strconv.FormatInt(id, 10), Valid: true}
}

func TestTransactionsByDueDate(t *testing.T) {
	db := New()
	tx := db.Transactions()
	ctx := context.Background()

	for _, due := range []string{"2024-06-10", "2024-05-10", "2024-05-10"} {
		_, err := tx.Create(ctx, models.NewTransactionInput{
			Description: due, Amount: decimal.NewFromInt(10), Type: models.TransactionIncome,
			DueDate: due, Status: models.TransactionPending,
		})
		require.NoError(t, err)
	}
	list, err := tx.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})

	updated, err := tx.UpdateStatus(ctx, 2, models.TransactionPaid)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPaid, updated.Status)

	affected, err := tx.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestFailInjection(t *testing.T) {
	db := New()
	db.Fail("transactions", sql.ErrConnDone)
	_, err := db.Transactions().List(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)

	db.Fail("transactions", nil)
	_, err = db.Transactions().List(context.Background())
	assert.NoError(t, err)
}

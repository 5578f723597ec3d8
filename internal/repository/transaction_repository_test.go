package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studio-api/internal/models"
)

var transactionRowColumns = []string{"id", "description", "amount", "type", "category", "due_date", "status", "created_at"}

func TestTransactionRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTransactionRepository(db, nil)

	now := time.Now()
	rows := sqlmock.NewRows(transactionRowColumns).
		AddRow(1, "Aluguel", []byte("500.00"), "Despesa", "Fixas", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "Pendente", now).
		AddRow(2, "Mensalidade Ana", []byte("180.50"), "Receita", "Mensalidades", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "Pago", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, description, amount, type, category, due_date, status, created_at FROM transactions ORDER BY due_date ASC, id ASC")).
		WillReturnRows(rows)

	transactions, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "2024-01-05", transactions[0].DueDate.String())
	assert.Equal(t, models.TransactionPaid, transactions[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTransactionRepository(db, nil)

	amount := decimal.NewFromInt(500)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions (description, amount, type, category, due_date, status)\n        VALUES ($1, $2, $3, $4, $5::date, $6)")).
		WithArgs("Aluguel", "500", models.TransactionExpense, "Fixas", "2024-01-05", models.TransactionPending).
		WillReturnRows(sqlmock.NewRows(transactionRowColumns).
			AddRow(4, "Aluguel", "500", "Despesa", "Fixas", "2024-01-05", "Pendente", time.Now()))

	created, err := repo.Create(context.Background(), models.NewTransactionInput{
		Description: "Aluguel",
		Amount:      amount,
		Type:        models.TransactionExpense,
		Category:    "Fixas",
		DueDate:     "2024-01-05",
		Status:      models.TransactionPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, models.TransactionPending, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTransactionRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE transactions SET status = $1 WHERE id = $2 RETURNING")).
		WithArgs(models.TransactionPaid, int64(1)).
		WillReturnRows(sqlmock.NewRows(transactionRowColumns).
			AddRow(1, "Aluguel", "500", "Despesa", "Fixas", "2024-01-05", "Pago", time.Now()))

	updated, err := repo.UpdateStatus(context.Background(), 1, models.TransactionPaid)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPaid, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTransactionRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepositoryDeleteRowsAffectedError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTransactionRepository(db, nil)

	resultErr := errors.New("driver: rows affected unavailable")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewErrorResult(resultErr))

	_, err := repo.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, resultErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

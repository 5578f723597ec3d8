package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studio-api/internal/models"
)

const transactionColumns = "id, description, amount, type, category, due_date, status, created_at"

// TransactionRepository persists income and expense entries.
type TransactionRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewTransactionRepository constructs a TransactionRepository.
func NewTransactionRepository(db *sqlx.DB, metrics QueryObserver) *TransactionRepository {
	return &TransactionRepository{db: db, metrics: metrics}
}

// List returns every transaction ordered by due date.
func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	defer observe(r.metrics, "transactions.list", time.Now())
	query := "SELECT " + transactionColumns + " FROM transactions ORDER BY due_date ASC, id ASC"
	transactions := make([]models.Transaction, 0)
	if err := r.db.SelectContext(ctx, &transactions, query); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// Create inserts a transaction. The due date text is parsed by the store.
func (r *TransactionRepository) Create(ctx context.Context, in models.NewTransactionInput) (*models.Transaction, error) {
	defer observe(r.metrics, "transactions.create", time.Now())
	query := `INSERT INTO transactions (description, amount, type, category, due_date, status)
        VALUES ($1, $2, $3, $4, $5::date, $6) RETURNING ` + transactionColumns
	var created models.Transaction
	if err := r.db.GetContext(ctx, &created, query, in.Description, in.Amount, in.Type, in.Category, in.DueDate, in.Status); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return &created, nil
}

// UpdateStatus sets the settlement status and returns the updated row.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error) {
	defer observe(r.metrics, "transactions.update", time.Now())
	query := "UPDATE transactions SET status = $1 WHERE id = $2 RETURNING " + transactionColumns
	var updated models.Transaction
	if err := r.db.GetContext(ctx, &updated, query, status, id); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return &updated, nil
}

// Delete removes a transaction and reports how many rows matched.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	defer observe(r.metrics, "transactions.delete", time.Now())
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete transaction rows affected: %w", err)
	}
	return affected, nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are exchanged as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType separates income from expenses.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Receita"
	TransactionExpense TransactionType = "Despesa"
)

// TransactionStatus tracks settlement of a transaction.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "Pendente"
	TransactionPaid    TransactionStatus = "Pago"
)

// Toggle flips between pending and paid.
func (s TransactionStatus) Toggle() TransactionStatus {
	if s == TransactionPending {
		return TransactionPaid
	}
	return TransactionPending
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          int64             `db:"id" json:"id"`
	Description string            `db:"description" json:"description"`
	Amount      decimal.Decimal   `db:"amount" json:"amount"`
	Type        TransactionType   `db:"type" json:"type"`
	Category    string            `db:"category" json:"category"`
	DueDate     Date              `db:"due_date" json:"due_date"`
	Status      TransactionStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// NewTransactionInput carries the raw values for a transaction insert. DueDate is passed
// to the store as written.
type NewTransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	DueDate     string
	Status      TransactionStatus
}

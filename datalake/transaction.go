package datalake

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether money moved into or out of a product.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
)

// TransactionStatus is the settlement state of a Transaction.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusPending   TransactionStatus = "Pending"
)

// Transaction is a deposit into or a withdrawal from one Product by one Client.
type Transaction struct {
	ID         string
	ClientID   string
	ProductID  string
	Type       TransactionType
	Amount     decimal.Decimal
	OccurredAt time.Time
	Status     TransactionStatus
}

// Transactions is an alias type for a slice of Transaction.
type Transactions = []Transaction

package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes ledger entries.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single bookkeeping entry in a business ledger.
type Transaction struct {
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Business is a running franchise unit created from an approved purchase
// request. It carries a simple append-only transaction ledger.
type Business struct {
	ID           uuid.UUID
	UserID       uuid.UUID  // The buyer who now runs the business.
	FrancheasyID uuid.UUID  // The listing this business was bought from.
	StoreID      *uuid.UUID // Optional store placement.
	PovilionID   *uuid.UUID // Optional kiosk placement.
	Transactions []Transaction
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Totals summarizes a business ledger.
type Totals struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpense     float64 `json:"total_expense"`
	Balance          float64 `json:"balance"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

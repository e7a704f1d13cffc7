package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an operational cost. Each category maps to a
// ledger expense account (per-vehicle or per-client when a sub-ledger exists).
type ExpenseCategory string

const (
	ExpenseFreight ExpenseCategory = "freight"
	ExpenseCustoms ExpenseCategory = "customs"
	ExpenseStorage ExpenseCategory = "storage"
	ExpenseOther   ExpenseCategory = "other"
)

// OperationalExpense is a cost incurred moving, clearing or storing a vehicle.
// Amount is always in the ledger's base currency; when the cost was billed in
// a foreign currency the original amount and the conversion rate are kept.
type OperationalExpense struct {
	ExpenseID        int64           `json:"expenseID"`
	VehicleID        *int64          `json:"vehicleID,omitempty"`
	CustomerID       *int64          `json:"customerID,omitempty"`
	AuctionID        *int64          `json:"auctionID,omitempty"`
	Category         ExpenseCategory `json:"category"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	Amount           decimal.Decimal `json:"amount"` // base-currency amount
	ExchangeRateID   *string         `json:"exchangeRateID,omitempty"`
	Paid             bool            `json:"paid"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	Description      string          `json:"description"`
	Supplier         string          `json:"supplier"`
	CreatedAt        time.Time       `json:"createdAt"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single persisted configuration row the ledger core consumes.
// BooksLockedUntil drives the period lock guard: entries dated on or before it
// are created pending. DefaultExchangeRate is the fallback used when no stored
// rate exists for a currency pair.
type Settings struct {
	BooksLockedUntil    *time.Time      `json:"booksLockedUntil,omitempty"`
	DefaultExchangeRate decimal.Decimal `json:"defaultExchangeRate"`
	AccountingMethod    string          `json:"accountingMethod"` // "accrual" or "cash"
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the settings table row. The table holds exactly one row.
type Settings struct {
	BooksLockedUntil    *time.Time      `db:"books_locked_until"`
	DefaultExchangeRate decimal.Decimal `db:"default_exchange_rate"`
	AccountingMethod    string          `db:"accounting_method"`
	AuditFields
}

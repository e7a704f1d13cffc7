package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the exchange_rates table row.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	BaseCurrency   string          `db:"base_currency"`
	QuoteCurrency  string          `db:"quote_currency"`
	Rate           decimal.Decimal `db:"rate"`
	EffectiveAt    time.Time       `db:"effective_at"`
	AuditFields
}

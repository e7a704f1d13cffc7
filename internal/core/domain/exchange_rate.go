package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies.
// Multiple rates may exist for a pair; the most recent EffectiveAt wins.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveAt    time.Time       `json:"effectiveAt"`
	AuditFields
}

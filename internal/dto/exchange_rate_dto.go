package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// CreateExchangeRateRequest defines the data needed to store an exchange rate.
type CreateExchangeRateRequest struct {
	BaseCurrency  string          `json:"baseCurrency" binding:"required,len=3"`
	QuoteCurrency string          `json:"quoteCurrency" binding:"required,len=3"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveAt   time.Time       `json:"effectiveAt" binding:"required"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveAt    time.Time       `json:"effectiveAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ConvertParams defines the query parameters for a currency conversion.
type ConvertParams struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"required,len=3"`
}

// ConvertResponse defines the result of a currency conversion.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		BaseCurrency:   r.BaseCurrency,
		QuoteCurrency:  r.QuoteCurrency,
		Rate:           r.Rate,
		EffectiveAt:    r.EffectiveAt,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
	}
}

package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetLatestRate retrieves the most recent stored rate for a pair.
	GetLatestRate(ctx context.Context, baseCurrency, quoteCurrency string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// CurrencyConverterSvc converts amounts into the ledger's base currency.
type CurrencyConverterSvc interface {
	// Rate resolves the conversion rate from a currency into the base
	// currency: latest stored rate, then the settings default, then the
	// configured default. Identity pairs always resolve to 1.
	Rate(ctx context.Context, fromCurrency string, asOf time.Time) (decimal.Decimal, error)

	// ConvertToBase converts an amount into the base currency, rounding to
	// the base currency's precision only at this final step.
	ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string, asOf time.Time) (decimal.Decimal, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	CurrencyConverterSvc
}

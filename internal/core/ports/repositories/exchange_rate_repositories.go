package repositories

import (
	"context"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindLatestRate retrieves the most recent stored rate for a currency
	// pair, by effective timestamp. Returns apperrors.ErrNotFound when no
	// rate has ever been stored for the pair.
	FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string) (*domain.ExchangeRate, error)

	// FindRateByID retrieves a rate by its identifier.
	FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

var ErrNoConversionRate = errors.New("no conversion rate available for currency pair")

// baseCurrencyPrecision is the decimal precision of the base currency (OMR
// uses 3 decimal places). Conversions round only at the final step.
const baseCurrencyPrecision = 3

// exchangeRateService provides business logic for exchange rates and
// conversion into the base currency.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencySvc  portssvc.CurrencyReaderSvc
	settingsRepo portsrepo.SettingsReader
	baseCurrency string
	defaultRate  decimal.Decimal
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithSettingsReader sets the settings repository used for the default-rate
// fallback when no stored rate exists.
func WithSettingsReader(repo portsrepo.SettingsReader) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.settingsRepo = repo
	}
}

// WithDefaultRate sets the configured last-resort conversion rate.
func WithDefaultRate(rate decimal.Decimal) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.defaultRate = rate
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, baseCurrency string, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:     rateRepo,
		currencySvc:  currencySvc,
		baseCurrency: strings.ToUpper(baseCurrency),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure exchangeRateService implements the portssvc.ExchangeRateSvcFacade interface
var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	base := strings.ToUpper(req.BaseCurrency)
	quote := strings.ToUpper(req.QuoteCurrency)
	if base == quote {
		return nil, fmt.Errorf("%w: base and quote currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Both currencies must be registered before a rate can be stored.
	for _, code := range []string{base, quote} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code %q not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency %q: %w", code, err)
		}
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		BaseCurrency:   base,
		QuoteCurrency:  quote,
		Rate:           req.Rate,
		EffectiveAt:    req.EffectiveAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("base", base), slog.String("quote", quote))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	return &rate, nil
}

// GetLatestRate retrieves the most recent stored rate for a currency pair.
func (s *exchangeRateService) GetLatestRate(ctx context.Context, baseCurrency, quoteCurrency string) (*domain.ExchangeRate, error) {
	base := strings.ToUpper(baseCurrency)
	quote := strings.ToUpper(quoteCurrency)
	if len(base) != 3 || len(quote) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindLatestRate(ctx, base, quote)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate %s/%s: %w", base, quote, err)
	}
	return rate, nil
}

// Rate resolves the conversion rate from a currency into the base currency.
// Resolution order: latest stored rate for the pair, then the settings
// default rate, then the configured default. Identity pairs resolve to 1.
func (s *exchangeRateService) Rate(ctx context.Context, fromCurrency string, asOf time.Time) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	if from == "" || from == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	stored, err := s.rateRepo.FindLatestRate(ctx, from, s.baseCurrency)
	if err == nil {
		return stored.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up rate %s/%s: %w", from, s.baseCurrency, err)
	}

	if s.settingsRepo != nil {
		settings, serr := s.settingsRepo.GetSettings(ctx)
		if serr != nil {
			s.LogError(ctx, serr, "Failed to load settings for default rate fallback")
		} else if settings.DefaultExchangeRate.GreaterThan(decimal.Zero) {
			s.LogDebug(ctx, "Using settings default exchange rate", slog.String("from", from))
			return settings.DefaultExchangeRate, nil
		}
	}

	if s.defaultRate.GreaterThan(decimal.Zero) {
		s.LogDebug(ctx, "Using configured default exchange rate", slog.String("from", from))
		return s.defaultRate, nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrNoConversionRate, from, s.baseCurrency)
}

// ConvertToBase converts an amount into the base currency. Intermediate math
// keeps full precision; rounding happens only here, at the final step.
func (s *exchangeRateService) ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string, asOf time.Time) (decimal.Decimal, error) {
	rate, err := s.Rate(ctx, fromCurrency, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(baseCurrencyPrecision), nil
}

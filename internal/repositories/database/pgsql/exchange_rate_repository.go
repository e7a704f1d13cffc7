package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/mapping"
)

// PgxExchangeRateRepository persists exchange rate history.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency, quote_currency, rate, effective_at, created_at, created_by, last_updated_at, last_updated_by`

// SaveExchangeRate persists a new exchange rate.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.BaseCurrency,
		modelRate.QuoteCurrency,
		modelRate.Rate,
		modelRate.EffectiveAt,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: exchange rate %s already exists", apperrors.ErrDuplicate, modelRate.ExchangeRateID)
		}
		return fmt.Errorf("failed to save exchange rate %s/%s: %w", modelRate.BaseCurrency, modelRate.QuoteCurrency, err)
	}
	return nil
}

func scanExchangeRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.BaseCurrency,
		&m.QuoteCurrency,
		&m.Rate,
		&m.EffectiveAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindLatestRate retrieves the most recent stored rate for a currency pair.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency = $1 AND quote_currency = $2
		ORDER BY effective_at DESC
		LIMIT 1;
	`

	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, baseCurrency, quoteCurrency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate for %s/%s: %w", baseCurrency, quoteCurrency, err)
	}
	return rate, nil
}

// FindRateByID retrieves a rate by its identifier.
func (r *PgxExchangeRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s: %w", rateID, err)
	}
	return rate, nil
}

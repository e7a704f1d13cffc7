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

// PgxSettingsRepository persists the singleton ledger settings row.
type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for settings data.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSettingsRepository implements portsrepo.SettingsRepositoryFacade
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// GetSettings retrieves the singleton settings row. The row is seeded by
// migrations, so a missing row is a deployment fault rather than user error.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT books_locked_until, default_exchange_rate, accounting_method,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM settings
		WHERE id = TRUE;
	`

	var m models.Settings
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.BooksLockedUntil,
		&m.DefaultExchangeRate,
		&m.AccountingMethod,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

// UpdateSettings replaces the singleton settings row.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	m := mapping.ToModelSettings(settings)

	query := `
		UPDATE settings
		SET books_locked_until = $1,
		    default_exchange_rate = $2,
		    accounting_method = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE id = TRUE;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.BooksLockedUntil,
		m.DefaultExchangeRate,
		m.AccountingMethod,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

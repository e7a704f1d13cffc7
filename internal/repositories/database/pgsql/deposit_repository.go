package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/mapping"
)

// PgxDepositRepository persists customer trust-fund deposits.
type PgxDepositRepository struct {
	BaseRepository
}

// newPgxDepositRepository creates a new repository for deposit data.
func newPgxDepositRepository(pool *pgxpool.Pool) portsrepo.DepositRepositoryFacade {
	return &PgxDepositRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDepositRepository implements portsrepo.DepositRepositoryFacade
var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

const depositColumns = `deposit_id, customer_id, vehicle_id, auction_id, amount, currency_code, amount_base, method, reference, status, received_at, refunded_at, created_at`

// SaveDepositInTx persists a new deposit within an existing transaction and
// returns its generated identifier.
func (r *PgxDepositRepository) SaveDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.CustomerDeposit) (int64, error) {
	m := mapping.ToModelCustomerDeposit(deposit)

	query := `
		INSERT INTO customer_deposits (customer_id, vehicle_id, auction_id, amount, currency_code, amount_base, method, reference, status, received_at, refunded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING deposit_id;
	`

	var depositID int64
	err := tx.QueryRow(ctx, query,
		m.CustomerID,
		m.VehicleID,
		m.AuctionID,
		m.Amount,
		m.CurrencyCode,
		m.AmountBase,
		m.Method,
		m.Reference,
		m.Status,
		m.ReceivedAt,
		m.RefundedAt,
		m.CreatedAt,
	).Scan(&depositID)
	if err != nil {
		return 0, fmt.Errorf("failed to save deposit for customer %d: %w", m.CustomerID, err)
	}
	return depositID, nil
}

// UpdateDepositStatusInTx transitions a deposit to a new status within an
// existing transaction. Refunds also stamp refunded_at.
func (r *PgxDepositRepository) UpdateDepositStatusInTx(ctx context.Context, tx pgx.Tx, depositID int64, status domain.DepositStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE customer_deposits
		SET status = $2,
		    refunded_at = CASE WHEN $2 = 'refunded' THEN $3 ELSE refunded_at END
		WHERE deposit_id = $1;
	`

	tag, err := tx.Exec(ctx, query, depositID, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status for deposit %d: %w", depositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanDeposit(row pgx.Row) (*domain.CustomerDeposit, error) {
	var m models.CustomerDeposit
	err := row.Scan(
		&m.DepositID,
		&m.CustomerID,
		&m.VehicleID,
		&m.AuctionID,
		&m.Amount,
		&m.CurrencyCode,
		&m.AmountBase,
		&m.Method,
		&m.Reference,
		&m.Status,
		&m.ReceivedAt,
		&m.RefundedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	deposit := mapping.ToDomainCustomerDeposit(m)
	return &deposit, nil
}

// FindDepositByID retrieves a deposit by its identifier.
func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID int64) (*domain.CustomerDeposit, error) {
	query := `SELECT ` + depositColumns + ` FROM customer_deposits WHERE deposit_id = $1;`

	deposit, err := scanDeposit(r.Pool.QueryRow(ctx, query, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deposit %d: %w", depositID, err)
	}
	return deposit, nil
}

// ListDepositsByCustomer retrieves all deposits recorded for a customer,
// newest first.
func (r *PgxDepositRepository) ListDepositsByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerDeposit, error) {
	query := `
		SELECT ` + depositColumns + `
		FROM customer_deposits
		WHERE customer_id = $1
		ORDER BY received_at DESC, deposit_id DESC;
	`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	deposits := []domain.CustomerDeposit{}
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit row for customer %d: %w", customerID, err)
		}
		deposits = append(deposits, *deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposit rows for customer %d: %w", customerID, err)
	}
	return deposits, nil
}

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

// PgxSubledgerRepository persists client and vehicle sub-ledger structures.
type PgxSubledgerRepository struct {
	BaseRepository
}

// newPgxSubledgerRepository creates a new repository for sub-ledger structures.
func newPgxSubledgerRepository(pool *pgxpool.Pool) portsrepo.SubledgerRepositoryFacade {
	return &PgxSubledgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSubledgerRepository implements portsrepo.SubledgerRepositoryFacade
var _ portsrepo.SubledgerRepositoryFacade = (*PgxSubledgerRepository)(nil)

const clientSubledgerColumns = `customer_id, deposit_account_code, auction_account_code, service_revenue_account_code, logistics_expense_account_code, receivable_account_code, currency_code, created_at`

const insertClientSubledgerQuery = `
	INSERT INTO client_account_structures (customer_id, deposit_account_code, auction_account_code, service_revenue_account_code, logistics_expense_account_code, receivable_account_code, currency_code, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func clientSubledgerInsertArgs(m models.ClientSubledger) []any {
	return []any{
		m.CustomerID,
		m.DepositAccountCode,
		m.AuctionAccountCode,
		m.ServiceRevenueAccountCode,
		m.LogisticsExpenseAccountCode,
		m.ReceivableAccountCode,
		m.CurrencyCode,
		m.CreatedAt,
	}
}

// FindClientSubledger retrieves the sub-ledger structure for a customer.
func (r *PgxSubledgerRepository) FindClientSubledger(ctx context.Context, customerID int64) (*domain.ClientSubledger, error) {
	query := `SELECT ` + clientSubledgerColumns + ` FROM client_account_structures WHERE customer_id = $1;`

	var m models.ClientSubledger
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
		&m.DepositAccountCode,
		&m.AuctionAccountCode,
		&m.ServiceRevenueAccountCode,
		&m.LogisticsExpenseAccountCode,
		&m.ReceivableAccountCode,
		&m.CurrencyCode,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sub-ledger for customer %d: %w", customerID, err)
	}

	structure := mapping.ToDomainClientSubledger(m)
	return &structure, nil
}

// SaveClientSubledger persists a client sub-ledger structure row.
func (r *PgxSubledgerRepository) SaveClientSubledger(ctx context.Context, structure domain.ClientSubledger) error {
	m := mapping.ToModelClientSubledger(structure)
	_, err := r.Pool.Exec(ctx, insertClientSubledgerQuery, clientSubledgerInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sub-ledger for customer %d already exists", apperrors.ErrDuplicate, m.CustomerID)
		}
		return fmt.Errorf("failed to save sub-ledger for customer %d: %w", m.CustomerID, err)
	}
	return nil
}

// SaveClientSubledgerInTx persists a client sub-ledger structure row within an
// existing transaction.
func (r *PgxSubledgerRepository) SaveClientSubledgerInTx(ctx context.Context, tx pgx.Tx, structure domain.ClientSubledger) error {
	m := mapping.ToModelClientSubledger(structure)
	_, err := tx.Exec(ctx, insertClientSubledgerQuery, clientSubledgerInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sub-ledger for customer %d already exists", apperrors.ErrDuplicate, m.CustomerID)
		}
		return fmt.Errorf("failed to save sub-ledger for customer %d: %w", m.CustomerID, err)
	}
	return nil
}

const vehicleSubledgerColumns = `vehicle_id, customer_id, deposit_account_code, auction_account_code, freight_account_code, customs_account_code, commission_account_code, storage_account_code, currency_code, created_at`

const insertVehicleSubledgerQuery = `
	INSERT INTO vehicle_account_structures (vehicle_id, customer_id, deposit_account_code, auction_account_code, freight_account_code, customs_account_code, commission_account_code, storage_account_code, currency_code, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func vehicleSubledgerInsertArgs(m models.VehicleSubledger) []any {
	return []any{
		m.VehicleID,
		m.CustomerID,
		m.DepositAccountCode,
		m.AuctionAccountCode,
		m.FreightAccountCode,
		m.CustomsAccountCode,
		m.CommissionAccountCode,
		m.StorageAccountCode,
		m.CurrencyCode,
		m.CreatedAt,
	}
}

// FindVehicleSubledger retrieves the sub-ledger structure for a vehicle.
func (r *PgxSubledgerRepository) FindVehicleSubledger(ctx context.Context, vehicleID int64) (*domain.VehicleSubledger, error) {
	query := `SELECT ` + vehicleSubledgerColumns + ` FROM vehicle_account_structures WHERE vehicle_id = $1;`

	var m models.VehicleSubledger
	err := r.Pool.QueryRow(ctx, query, vehicleID).Scan(
		&m.VehicleID,
		&m.CustomerID,
		&m.DepositAccountCode,
		&m.AuctionAccountCode,
		&m.FreightAccountCode,
		&m.CustomsAccountCode,
		&m.CommissionAccountCode,
		&m.StorageAccountCode,
		&m.CurrencyCode,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sub-ledger for vehicle %d: %w", vehicleID, err)
	}

	structure := mapping.ToDomainVehicleSubledger(m)
	return &structure, nil
}

// SaveVehicleSubledger persists a vehicle sub-ledger structure row.
func (r *PgxSubledgerRepository) SaveVehicleSubledger(ctx context.Context, structure domain.VehicleSubledger) error {
	m := mapping.ToModelVehicleSubledger(structure)
	_, err := r.Pool.Exec(ctx, insertVehicleSubledgerQuery, vehicleSubledgerInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sub-ledger for vehicle %d already exists", apperrors.ErrDuplicate, m.VehicleID)
		}
		return fmt.Errorf("failed to save sub-ledger for vehicle %d: %w", m.VehicleID, err)
	}
	return nil
}

// SaveVehicleSubledgerInTx persists a vehicle sub-ledger structure row within
// an existing transaction.
func (r *PgxSubledgerRepository) SaveVehicleSubledgerInTx(ctx context.Context, tx pgx.Tx, structure domain.VehicleSubledger) error {
	m := mapping.ToModelVehicleSubledger(structure)
	_, err := tx.Exec(ctx, insertVehicleSubledgerQuery, vehicleSubledgerInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sub-ledger for vehicle %d already exists", apperrors.ErrDuplicate, m.VehicleID)
		}
		return fmt.Errorf("failed to save sub-ledger for vehicle %d: %w", m.VehicleID, err)
	}
	return nil
}

// UpdateVehicleSubledgerCustomer links a vehicle sub-ledger to a customer.
func (r *PgxSubledgerRepository) UpdateVehicleSubledgerCustomer(ctx context.Context, vehicleID, customerID int64, updatedAt time.Time) error {
	query := `
		UPDATE vehicle_account_structures
		SET customer_id = $2
		WHERE vehicle_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query, vehicleID, customerID)
	if err != nil {
		return fmt.Errorf("failed to link vehicle %d to customer %d: %w", vehicleID, customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

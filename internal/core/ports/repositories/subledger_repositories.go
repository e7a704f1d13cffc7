package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// SubledgerReader defines read operations for client and vehicle sub-ledger
// structures.
type SubledgerReader interface {
	// FindClientSubledger retrieves the sub-ledger structure for a customer.
	// Returns apperrors.ErrNotFound when the customer has never been
	// provisioned.
	FindClientSubledger(ctx context.Context, customerID int64) (*domain.ClientSubledger, error)

	// FindVehicleSubledger retrieves the sub-ledger structure for a vehicle.
	FindVehicleSubledger(ctx context.Context, vehicleID int64) (*domain.VehicleSubledger, error)
}

// SubledgerWriter defines write operations for sub-ledger structures.
type SubledgerWriter interface {
	// SaveClientSubledger persists a client sub-ledger structure row.
	// Returns apperrors.ErrDuplicate when the customer already has one.
	SaveClientSubledger(ctx context.Context, structure domain.ClientSubledger) error

	// SaveClientSubledgerInTx persists a client sub-ledger structure row
	// within an existing transaction.
	SaveClientSubledgerInTx(ctx context.Context, tx pgx.Tx, structure domain.ClientSubledger) error

	// SaveVehicleSubledger persists a vehicle sub-ledger structure row.
	SaveVehicleSubledger(ctx context.Context, structure domain.VehicleSubledger) error

	// SaveVehicleSubledgerInTx persists a vehicle sub-ledger structure row
	// within an existing transaction.
	SaveVehicleSubledgerInTx(ctx context.Context, tx pgx.Tx, structure domain.VehicleSubledger) error

	// UpdateVehicleSubledgerCustomer links a vehicle sub-ledger to a customer.
	UpdateVehicleSubledgerCustomer(ctx context.Context, vehicleID, customerID int64, updatedAt time.Time) error
}

// SubledgerRepositoryFacade combines all sub-ledger repository interfaces.
type SubledgerRepositoryFacade interface {
	SubledgerReader
	SubledgerWriter
}

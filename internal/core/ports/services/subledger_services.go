package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

// SubledgerSvcFacade provisions and resolves per-customer and per-vehicle
// ledger account structures. Provisioning is idempotent: calling it again for
// the same owner returns the existing structure.
type SubledgerSvcFacade interface {
	// EnsureClientSubledger returns the customer's sub-ledger structure,
	// creating the accounts and the mapping row on first call.
	EnsureClientSubledger(ctx context.Context, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error)

	// EnsureClientSubledgerInTx is EnsureClientSubledger inside a
	// caller-owned transaction.
	EnsureClientSubledgerInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error)

	// EnsureVehicleSubledger returns the vehicle's sub-ledger structure,
	// creating the accounts and the mapping row on first call. When the
	// request carries a customer and the existing structure has none, the
	// customer link is attached.
	EnsureVehicleSubledger(ctx context.Context, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error)

	// EnsureVehicleSubledgerInTx is EnsureVehicleSubledger inside a
	// caller-owned transaction.
	EnsureVehicleSubledgerInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error)

	// GetClientSubledger retrieves an existing client structure without
	// provisioning.
	GetClientSubledger(ctx context.Context, customerID int64) (*domain.ClientSubledger, error)

	// GetVehicleSubledger retrieves an existing vehicle structure without
	// provisioning.
	GetVehicleSubledger(ctx context.Context, vehicleID int64) (*domain.VehicleSubledger, error)
}

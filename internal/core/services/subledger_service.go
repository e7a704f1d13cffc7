package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/accounting"
)

// subledgerService provisions per-customer and per-vehicle account structures.
// Account codes are derived deterministically, so provisioning the same owner
// twice always lands on the same codes; a concurrent first-provision loses the
// unique-constraint race and falls back to reading the winner's row.
type subledgerService struct {
	BaseService
	subledgerRepo portsrepo.SubledgerRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	txManager     portsrepo.TransactionManager
	baseCurrency  string
}

// NewSubledgerService creates a new sub-ledger provisioning service.
func NewSubledgerService(subledgerRepo portsrepo.SubledgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, txManager portsrepo.TransactionManager, baseCurrency string) portssvc.SubledgerSvcFacade {
	return &subledgerService{
		subledgerRepo: subledgerRepo,
		accountRepo:   accountRepo,
		txManager:     txManager,
		baseCurrency:  baseCurrency,
	}
}

// Ensure subledgerService implements the portssvc.SubledgerSvcFacade interface
var _ portssvc.SubledgerSvcFacade = (*subledgerService)(nil)

// subAccountSpec describes one derived account of a sub-ledger structure.
type subAccountSpec struct {
	parentCode  string
	accountType domain.AccountType
	nameSuffix  string
}

var clientAccountSpecs = []subAccountSpec{
	{domain.CodeClientDeposits, domain.Liability, "Deposits"},
	{domain.CodeAuctionClearing, domain.Asset, "Auction Clearing"},
	{domain.CodeServiceRevenue, domain.Revenue, "Service Revenue"},
	{domain.CodeFreightExpense, domain.Expense, "Logistics"},
	{domain.CodeReceivable, domain.Asset, "Receivable"},
}

var vehicleAccountSpecs = []subAccountSpec{
	{domain.CodeClientDeposits, domain.Liability, "Deposit"},
	{domain.CodeVehicleInventory, domain.Asset, "Auction Cost"},
	{domain.CodeFreightExpense, domain.Expense, "Freight"},
	{domain.CodeCustomsExpense, domain.Expense, "Customs"},
	{domain.CodeCommissionRevenue, domain.Revenue, "Commission"},
	{domain.CodeStorageExpense, domain.Expense, "Storage"},
}

func (s *subledgerService) currencyOrDefault(code string) string {
	if code == "" {
		return s.baseCurrency
	}
	return code
}

// EnsureClientSubledger returns the customer's sub-ledger, provisioning it on
// first call. Losing a concurrent creation race degrades to a refetch.
func (s *subledgerService) EnsureClientSubledger(ctx context.Context, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error) {
	existing, err := s.subledgerRepo.FindClientSubledger(ctx, req.CustomerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up client subledger %d: %w", req.CustomerID, err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	structure, err := s.provisionClientInTx(ctx, tx, req, creatorUserID)
	if err != nil {
		_ = s.txManager.Rollback(ctx, tx)
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent caller provisioned this customer first; their rows
			// are equivalent to ours because the codes are deterministic.
			s.LogDebug(ctx, "Lost client subledger provisioning race, refetching", slog.Int64("customer_id", req.CustomerID))
			return s.subledgerRepo.FindClientSubledger(ctx, req.CustomerID)
		}
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit client subledger provisioning: %w", err)
	}

	s.LogInfo(ctx, "Client subledger provisioned", slog.Int64("customer_id", req.CustomerID))
	return structure, nil
}

// EnsureClientSubledgerInTx is EnsureClientSubledger inside a caller-owned
// transaction. A lost creation race surfaces as ErrDuplicate and aborts the
// caller's transaction; callers retry the whole operation.
func (s *subledgerService) EnsureClientSubledgerInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error) {
	existing, err := s.subledgerRepo.FindClientSubledger(ctx, req.CustomerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up client subledger %d: %w", req.CustomerID, err)
	}
	return s.provisionClientInTx(ctx, tx, req, creatorUserID)
}

func (s *subledgerService) provisionClientInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error) {
	now := time.Now().UTC()
	currency := s.currencyOrDefault(req.CurrencyCode)

	codes := make([]string, len(clientAccountSpecs))
	for i, spec := range clientAccountSpecs {
		code := accounting.ClientAccountCode(spec.parentCode, req.CustomerID)
		codes[i] = code

		customerID := req.CustomerID
		account := domain.Account{
			Code:         code,
			Name:         fmt.Sprintf("%s - %s", req.CustomerName, spec.nameSuffix),
			AccountType:  spec.accountType,
			CurrencyCode: currency,
			IsActive:     true,
			CustomerID:   &customerID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		// The derived code may already exist in the chart (created directly
		// through the accounts API); that is fine, the structure row is what
		// decides whether provisioning happened.
		if err := s.accountRepo.EnsureAccountInTx(ctx, tx, account); err != nil {
			return nil, fmt.Errorf("failed to create account %s: %w", code, err)
		}
	}

	structure := domain.ClientSubledger{
		CustomerID:                  req.CustomerID,
		DepositAccountCode:          codes[0],
		AuctionAccountCode:          codes[1],
		ServiceRevenueAccountCode:   codes[2],
		LogisticsExpenseAccountCode: codes[3],
		ReceivableAccountCode:       codes[4],
		CurrencyCode:                currency,
		CreatedAt:                   now,
	}

	if err := s.subledgerRepo.SaveClientSubledgerInTx(ctx, tx, structure); err != nil {
		return nil, fmt.Errorf("failed to save client subledger %d: %w", req.CustomerID, err)
	}
	return &structure, nil
}

// EnsureVehicleSubledger returns the vehicle's sub-ledger, provisioning it on
// first call. When the request names a customer and the existing structure
// has none, the link is attached.
func (s *subledgerService) EnsureVehicleSubledger(ctx context.Context, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error) {
	existing, err := s.subledgerRepo.FindVehicleSubledger(ctx, req.VehicleID)
	if err == nil {
		return s.maybeAttachCustomer(ctx, existing, req.CustomerID)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up vehicle subledger %d: %w", req.VehicleID, err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	structure, err := s.provisionVehicleInTx(ctx, tx, req, creatorUserID)
	if err != nil {
		_ = s.txManager.Rollback(ctx, tx)
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Lost vehicle subledger provisioning race, refetching", slog.Int64("vehicle_id", req.VehicleID))
			won, ferr := s.subledgerRepo.FindVehicleSubledger(ctx, req.VehicleID)
			if ferr != nil {
				return nil, ferr
			}
			return s.maybeAttachCustomer(ctx, won, req.CustomerID)
		}
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit vehicle subledger provisioning: %w", err)
	}

	s.LogInfo(ctx, "Vehicle subledger provisioned", slog.Int64("vehicle_id", req.VehicleID))
	return structure, nil
}

// EnsureVehicleSubledgerInTx is EnsureVehicleSubledger inside a caller-owned
// transaction.
func (s *subledgerService) EnsureVehicleSubledgerInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error) {
	existing, err := s.subledgerRepo.FindVehicleSubledger(ctx, req.VehicleID)
	if err == nil {
		return s.maybeAttachCustomer(ctx, existing, req.CustomerID)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up vehicle subledger %d: %w", req.VehicleID, err)
	}
	return s.provisionVehicleInTx(ctx, tx, req, creatorUserID)
}

func (s *subledgerService) maybeAttachCustomer(ctx context.Context, structure *domain.VehicleSubledger, customerID *int64) (*domain.VehicleSubledger, error) {
	if customerID == nil || structure.CustomerID != nil {
		return structure, nil
	}
	if err := s.subledgerRepo.UpdateVehicleSubledgerCustomer(ctx, structure.VehicleID, *customerID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to attach customer %d to vehicle subledger %d: %w", *customerID, structure.VehicleID, err)
	}
	structure.CustomerID = customerID
	return structure, nil
}

func (s *subledgerService) provisionVehicleInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error) {
	now := time.Now().UTC()
	currency := s.currencyOrDefault(req.CurrencyCode)

	codes := make([]string, len(vehicleAccountSpecs))
	for i, spec := range vehicleAccountSpecs {
		code := accounting.VehicleAccountCode(spec.parentCode, req.VehicleID)
		codes[i] = code

		vehicleID := req.VehicleID
		account := domain.Account{
			Code:         code,
			Name:         fmt.Sprintf("%s - %s", req.VehicleLabel, spec.nameSuffix),
			AccountType:  spec.accountType,
			CurrencyCode: currency,
			IsActive:     true,
			CustomerID:   req.CustomerID,
			VehicleID:    &vehicleID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := s.accountRepo.EnsureAccountInTx(ctx, tx, account); err != nil {
			return nil, fmt.Errorf("failed to create account %s: %w", code, err)
		}
	}

	structure := domain.VehicleSubledger{
		VehicleID:             req.VehicleID,
		CustomerID:            req.CustomerID,
		DepositAccountCode:    codes[0],
		AuctionAccountCode:    codes[1],
		FreightAccountCode:    codes[2],
		CustomsAccountCode:    codes[3],
		CommissionAccountCode: codes[4],
		StorageAccountCode:    codes[5],
		CurrencyCode:          currency,
		CreatedAt:             now,
	}

	if err := s.subledgerRepo.SaveVehicleSubledgerInTx(ctx, tx, structure); err != nil {
		return nil, fmt.Errorf("failed to save vehicle subledger %d: %w", req.VehicleID, err)
	}
	return &structure, nil
}

// GetClientSubledger retrieves an existing client structure without provisioning.
func (s *subledgerService) GetClientSubledger(ctx context.Context, customerID int64) (*domain.ClientSubledger, error) {
	structure, err := s.subledgerRepo.FindClientSubledger(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client subledger %d: %w", customerID, err)
	}
	return structure, nil
}

// GetVehicleSubledger retrieves an existing vehicle structure without provisioning.
func (s *subledgerService) GetVehicleSubledger(ctx context.Context, vehicleID int64) (*domain.VehicleSubledger, error) {
	structure, err := s.subledgerRepo.FindVehicleSubledger(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle subledger %d: %w", vehicleID, err)
	}
	return structure, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

var (
	ErrAmountNotPositive    = errors.New("amount must be positive")
	ErrDepositNotHeld       = errors.New("deposit is not in held status")
	ErrAmountExceedsDeposit = errors.New("amount exceeds the held deposit")
	ErrFundingConflict      = errors.New("fromDeposit and onCredit are mutually exclusive")
	ErrMissingCustomer      = errors.New("operation requires a customer")
	ErrMissingOwner         = errors.New("operation requires a vehicle or a customer")
	ErrAlreadyRecognized    = errors.New("invoice revenue already recognized")
	ErrInvoiceAlreadyPaid   = errors.New("invoice is already fully paid")
	ErrOverpayment          = errors.New("payment exceeds invoice outstanding amount")
)

// treasuryService implements the catalog of business transactions. Every
// operation pairs one balanced journal entry with its business-record
// mutation inside a single database transaction.
type treasuryService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	journalSvc   portssvc.JournalWriterSvc
	subledgerSvc portssvc.SubledgerSvcFacade
	converter    portssvc.CurrencyConverterSvc
	depositRepo  portsrepo.DepositRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	baseCurrency string
}

// NewTreasuryService creates a new treasury service.
func NewTreasuryService(
	txManager portsrepo.TransactionManager,
	journalSvc portssvc.JournalWriterSvc,
	subledgerSvc portssvc.SubledgerSvcFacade,
	converter portssvc.CurrencyConverterSvc,
	depositRepo portsrepo.DepositRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	baseCurrency string,
) portssvc.TreasurySvcFacade {
	return &treasuryService{
		txManager:    txManager,
		journalSvc:   journalSvc,
		subledgerSvc: subledgerSvc,
		converter:    converter,
		depositRepo:  depositRepo,
		invoiceRepo:  invoiceRepo,
		expenseRepo:  expenseRepo,
		baseCurrency: baseCurrency,
	}
}

// Ensure treasuryService implements the portssvc.TreasurySvcFacade interface
var _ portssvc.TreasurySvcFacade = (*treasuryService)(nil)

// runInTx wraps fn in one transaction; the journal posting and the business
// record land together or not at all.
func (s *treasuryService) runInTx(ctx context.Context, fn func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error)) (*dto.TreasuryEntryResponse, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	resp, err := fn(tx)
	if err != nil {
		_ = s.txManager.Rollback(ctx, tx)
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return resp, nil
}

// clientSubledgerInTx resolves (provisioning if needed) the customer's
// sub-ledger inside the transaction.
func (s *treasuryService) clientSubledgerInTx(ctx context.Context, tx pgx.Tx, customerID int64, creatorUserID string) (*domain.ClientSubledger, error) {
	return s.subledgerSvc.EnsureClientSubledgerInTx(ctx, tx, dto.ProvisionClientSubledgerRequest{
		CustomerID:   customerID,
		CustomerName: fmt.Sprintf("Customer %d", customerID),
	}, creatorUserID)
}

func (s *treasuryService) vehicleSubledgerInTx(ctx context.Context, tx pgx.Tx, vehicleID int64, customerID *int64, creatorUserID string) (*domain.VehicleSubledger, error) {
	return s.subledgerSvc.EnsureVehicleSubledgerInTx(ctx, tx, dto.ProvisionVehicleSubledgerRequest{
		VehicleID:    vehicleID,
		VehicleLabel: fmt.Sprintf("Vehicle %d", vehicleID),
		CustomerID:   customerID,
	}, creatorUserID)
}

// ReceiveDeposit records trust money received from a customer: the deposit
// record plus Dr Bank / Cr client deposit account, tagged as client funds.
func (s *treasuryService) ReceiveDeposit(ctx context.Context, req dto.ReceiveDepositRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrAmountNotPositive)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.baseCurrency
	}
	amountBase, err := s.converter.ConvertToBase(ctx, req.Amount, currency, req.EntryDate)
	if err != nil {
		return nil, err
	}

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		client, err := s.clientSubledgerInTx(ctx, tx, req.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}

		deposit := domain.CustomerDeposit{
			CustomerID:   req.CustomerID,
			VehicleID:    req.VehicleID,
			AuctionID:    req.AuctionID,
			Amount:       req.Amount,
			CurrencyCode: currency,
			AmountBase:   amountBase,
			Method:       req.Method,
			Reference:    req.Reference,
			Status:       domain.DepositHeld,
			ReceivedAt:   req.EntryDate,
			CreatedAt:    time.Now().UTC(),
		}
		depositID, err := s.depositRepo.SaveDepositInTx(ctx, tx, deposit)
		if err != nil {
			return nil, fmt.Errorf("failed to save deposit: %w", err)
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:    req.EntryDate,
			Description:  fmt.Sprintf("Deposit received from customer %d", req.CustomerID),
			Reference:    req.Reference,
			CustomerID:   &req.CustomerID,
			VehicleID:    req.VehicleID,
			AuctionID:    req.AuctionID,
			IsClientFund: true,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: domain.CodeBank, Debit: amountBase},
				{AccountCode: client.DepositAccountCode, Credit: amountBase},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Deposit received",
			slog.Int64("customer_id", req.CustomerID),
			slog.Int64("deposit_id", depositID),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry), DepositID: &depositID}, nil
	})
}

// RefundDeposit returns a held deposit to the customer and closes it out.
func (s *treasuryService) RefundDeposit(ctx context.Context, req dto.RefundDepositRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	deposit, err := s.depositRepo.FindDepositByID(ctx, req.DepositID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deposit %d: %w", req.DepositID, err)
	}
	if deposit.Status != domain.DepositHeld {
		return nil, fmt.Errorf("%w: deposit %d is %s: %w", ErrDepositNotHeld, req.DepositID, deposit.Status, apperrors.ErrConflict)
	}

	// Reverse the base amount booked at receipt, not a conversion at today's
	// rate: the deposit account must net to zero once the refund posts.
	amountBase := deposit.AmountBase

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		client, err := s.clientSubledgerInTx(ctx, tx, deposit.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}

		if err := s.depositRepo.UpdateDepositStatusInTx(ctx, tx, deposit.DepositID, domain.DepositRefunded, creatorUserID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to update deposit status: %w", err)
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:    req.EntryDate,
			Description:  fmt.Sprintf("Deposit %d refunded to customer %d", deposit.DepositID, deposit.CustomerID),
			Reference:    deposit.Reference,
			CustomerID:   &deposit.CustomerID,
			VehicleID:    deposit.VehicleID,
			AuctionID:    deposit.AuctionID,
			IsClientFund: true,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: client.DepositAccountCode, Debit: amountBase},
				{AccountCode: domain.CodeBank, Credit: amountBase},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Deposit refunded",
			slog.Int64("deposit_id", deposit.DepositID),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry), DepositID: &deposit.DepositID}, nil
	})
}

// PayAuctionFromDeposit spends a held deposit on an auction purchase on the
// customer's behalf.
func (s *treasuryService) PayAuctionFromDeposit(ctx context.Context, req dto.PayAuctionFromDepositRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrAmountNotPositive)
	}

	deposit, err := s.depositRepo.FindDepositByID(ctx, req.DepositID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deposit %d: %w", req.DepositID, err)
	}
	if deposit.Status != domain.DepositHeld {
		return nil, fmt.Errorf("%w: deposit %d is %s: %w", ErrDepositNotHeld, req.DepositID, deposit.Status, apperrors.ErrConflict)
	}

	if req.Amount.GreaterThan(deposit.Amount) {
		return nil, fmt.Errorf("%w: cannot apply %s of a %s deposit: %w", ErrAmountExceedsDeposit, req.Amount, deposit.Amount, apperrors.ErrValidation)
	}

	// Apply at the rate booked when the deposit was received, so the deposit
	// account releases exactly its pro-rata share of the held base amount.
	amountBase := req.Amount.Mul(deposit.AmountBase).Div(deposit.Amount).Round(3)

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		client, err := s.clientSubledgerInTx(ctx, tx, deposit.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}

		if err := s.depositRepo.UpdateDepositStatusInTx(ctx, tx, deposit.DepositID, domain.DepositApplied, creatorUserID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to update deposit status: %w", err)
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:    req.EntryDate,
			Description:  fmt.Sprintf("Auction %d paid from deposit %d", req.AuctionID, deposit.DepositID),
			Reference:    deposit.Reference,
			CustomerID:   &deposit.CustomerID,
			VehicleID:    deposit.VehicleID,
			AuctionID:    &req.AuctionID,
			IsClientFund: true,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: client.DepositAccountCode, Debit: amountBase},
				{AccountCode: domain.CodeBank, Credit: amountBase},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Auction paid from deposit",
			slog.Int64("deposit_id", deposit.DepositID),
			slog.Int64("auction_id", req.AuctionID),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry), DepositID: &deposit.DepositID}, nil
	})
}

// RecognizeCommission moves earned commission out of the customer's deposit
// into revenue. The entry stays tagged as client funds so that commission
// recognized against trust money never inflates the profit and loss.
func (s *treasuryService) RecognizeCommission(ctx context.Context, req dto.RecognizeCommissionRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrAmountNotPositive)
	}

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		client, err := s.clientSubledgerInTx(ctx, tx, req.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}

		// Per-vehicle commission when a vehicle is named, otherwise the
		// customer's service revenue account.
		revenueCode := client.ServiceRevenueAccountCode
		if req.VehicleID != nil {
			vehicle, err := s.vehicleSubledgerInTx(ctx, tx, *req.VehicleID, &req.CustomerID, creatorUserID)
			if err != nil {
				return nil, err
			}
			revenueCode = vehicle.CommissionAccountCode
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:    req.EntryDate,
			Description:  req.Description,
			CustomerID:   &req.CustomerID,
			VehicleID:    req.VehicleID,
			IsClientFund: true,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: client.DepositAccountCode, Debit: req.Amount},
				{AccountCode: revenueCode, Credit: req.Amount},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Commission recognized",
			slog.Int64("customer_id", req.CustomerID),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry)}, nil
	})
}

// CapitalizeVehiclePurchase books a vehicle purchase into its asset account,
// funded from bank, the customer's deposit, or accounts payable.
func (s *treasuryService) CapitalizeVehiclePurchase(ctx context.Context, req dto.CapitalizeVehiclePurchaseRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrAmountNotPositive)
	}
	if req.FromDeposit && req.OnCredit {
		return nil, fmt.Errorf("%w: %w", ErrFundingConflict, apperrors.ErrValidation)
	}
	if req.FromDeposit && req.CustomerID == nil {
		return nil, fmt.Errorf("%w: fromDeposit needs the owning customer", ErrMissingCustomer)
	}

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		vehicle, err := s.vehicleSubledgerInTx(ctx, tx, req.VehicleID, req.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}

		creditCode := domain.CodeBank
		isClientFund := false
		switch {
		case req.FromDeposit:
			client, err := s.clientSubledgerInTx(ctx, tx, *req.CustomerID, creatorUserID)
			if err != nil {
				return nil, err
			}
			creditCode = client.DepositAccountCode
			isClientFund = true
		case req.OnCredit:
			creditCode = domain.CodeAccountsPayable
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:    req.EntryDate,
			Description:  fmt.Sprintf("Vehicle %d purchase capitalized", req.VehicleID),
			Reference:    req.Reference,
			CustomerID:   req.CustomerID,
			VehicleID:    &req.VehicleID,
			IsClientFund: isClientFund,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: vehicle.AuctionAccountCode, Debit: req.Amount},
				{AccountCode: creditCode, Credit: req.Amount},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Vehicle purchase capitalized",
			slog.Int64("vehicle_id", req.VehicleID),
			slog.Bool("from_deposit", req.FromDeposit),
			slog.Bool("on_credit", req.OnCredit),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry)}, nil
	})
}

// RecordOperationalExpense books a freight, customs, storage or other cost.
// Foreign amounts are converted into the base currency before posting.
func (s *treasuryService) RecordOperationalExpense(ctx context.Context, req dto.RecordOperationalExpenseRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrAmountNotPositive)
	}
	if req.VehicleID == nil && req.CustomerID == nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingOwner, apperrors.ErrValidation)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.baseCurrency
	}
	amountBase, err := s.converter.ConvertToBase(ctx, req.Amount, currency, req.EntryDate)
	if err != nil {
		return nil, err
	}

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		expenseCode, err := s.resolveExpenseAccount(ctx, tx, req, creatorUserID)
		if err != nil {
			return nil, err
		}

		paidAt := req.EntryDate
		expense := domain.OperationalExpense{
			VehicleID:        req.VehicleID,
			CustomerID:       req.CustomerID,
			AuctionID:        req.AuctionID,
			Category:         req.Category,
			OriginalAmount:   req.Amount,
			OriginalCurrency: currency,
			Amount:           amountBase,
			Paid:             true,
			PaidAt:           &paidAt,
			Description:      req.Description,
			Supplier:         req.Supplier,
			CreatedAt:        time.Now().UTC(),
		}
		expenseID, err := s.expenseRepo.SaveExpenseInTx(ctx, tx, expense)
		if err != nil {
			return nil, fmt.Errorf("failed to save operational expense: %w", err)
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:   req.EntryDate,
			Description: req.Description,
			CustomerID:  req.CustomerID,
			VehicleID:   req.VehicleID,
			AuctionID:   req.AuctionID,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: expenseCode, Debit: amountBase},
				{AccountCode: domain.CodeBank, Credit: amountBase},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Operational expense recorded",
			slog.String("category", string(req.Category)),
			slog.Int64("expense_id", expenseID),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry), ExpenseID: &expenseID}, nil
	})
}

// resolveExpenseAccount picks the most specific expense account for a cost:
// the vehicle's category account, then the customer's logistics account, then
// the generic chart account for the category.
func (s *treasuryService) resolveExpenseAccount(ctx context.Context, tx pgx.Tx, req dto.RecordOperationalExpenseRequest, creatorUserID string) (string, error) {
	if req.VehicleID != nil {
		vehicle, err := s.vehicleSubledgerInTx(ctx, tx, *req.VehicleID, req.CustomerID, creatorUserID)
		if err != nil {
			return "", err
		}
		switch req.Category {
		case domain.ExpenseFreight:
			return vehicle.FreightAccountCode, nil
		case domain.ExpenseCustoms:
			return vehicle.CustomsAccountCode, nil
		case domain.ExpenseStorage:
			return vehicle.StorageAccountCode, nil
		}
		return domain.CodeOperationalExpense, nil
	}

	client, err := s.clientSubledgerInTx(ctx, tx, *req.CustomerID, creatorUserID)
	if err != nil {
		return "", err
	}
	if req.Category == domain.ExpenseOther {
		return domain.CodeOperationalExpense, nil
	}
	return client.LogisticsExpenseAccountCode, nil
}

// RecognizeInvoiceRevenue books an invoice's revenue against receivables
// before payment arrives (accrual recognition).
func (s *treasuryService) RecognizeInvoiceRevenue(ctx context.Context, req dto.RecognizeInvoiceRevenueRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %d: %w", req.InvoiceID, err)
	}
	if invoice.RevenueRecognizedAt != nil {
		return nil, fmt.Errorf("%w: invoice %d: %w", ErrAlreadyRecognized, req.InvoiceID, apperrors.ErrConflict)
	}

	amountBase, err := s.converter.ConvertToBase(ctx, invoice.Total, invoice.CurrencyCode, req.EntryDate)
	if err != nil {
		return nil, err
	}

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		client, err := s.clientSubledgerInTx(ctx, tx, invoice.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}
		revenueCode, err := s.invoiceRevenueAccount(ctx, tx, invoice, client, creatorUserID)
		if err != nil {
			return nil, err
		}

		if err := s.invoiceRepo.MarkInvoiceRecognizedInTx(ctx, tx, invoice.InvoiceID, req.EntryDate, creatorUserID); err != nil {
			return nil, fmt.Errorf("failed to mark invoice recognized: %w", err)
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:   req.EntryDate,
			Description: fmt.Sprintf("Revenue recognized for invoice %d", invoice.InvoiceID),
			CustomerID:  &invoice.CustomerID,
			VehicleID:   invoice.VehicleID,
			InvoiceID:   &invoice.InvoiceID,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: client.ReceivableAccountCode, Debit: amountBase},
				{AccountCode: revenueCode, Credit: amountBase},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Invoice revenue recognized",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry)}, nil
	})
}

// invoiceRevenueAccount picks the revenue account an invoice credits: the
// vehicle's commission account when the invoice names a vehicle, otherwise
// the customer's service revenue account.
func (s *treasuryService) invoiceRevenueAccount(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice, client *domain.ClientSubledger, creatorUserID string) (string, error) {
	if invoice.VehicleID == nil {
		return client.ServiceRevenueAccountCode, nil
	}
	vehicle, err := s.vehicleSubledgerInTx(ctx, tx, *invoice.VehicleID, &invoice.CustomerID, creatorUserID)
	if err != nil {
		return "", err
	}
	return vehicle.CommissionAccountCode, nil
}

// SettleInvoicePayment records a payment against an invoice. When revenue was
// recognized earlier the payment clears the receivable; otherwise it books
// the revenue directly (cash recognition).
func (s *treasuryService) SettleInvoicePayment(ctx context.Context, req dto.SettleInvoicePaymentRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w", ErrAmountNotPositive)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %d: %w", req.InvoiceID, err)
	}
	if invoice.Status == domain.InvoicePaid {
		return nil, fmt.Errorf("%w: invoice %d: %w", ErrInvoiceAlreadyPaid, req.InvoiceID, apperrors.ErrConflict)
	}

	paidSoFar, err := s.invoiceRepo.SumPaymentsByInvoice(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum invoice payments: %w", err)
	}
	if paidSoFar.Add(req.Amount).GreaterThan(invoice.Total) {
		return nil, fmt.Errorf("%w: invoice %d: %w", ErrOverpayment, req.InvoiceID, apperrors.ErrValidation)
	}

	amountBase, err := s.converter.ConvertToBase(ctx, req.Amount, invoice.CurrencyCode, req.EntryDate)
	if err != nil {
		return nil, err
	}

	return s.runInTx(ctx, func(tx pgx.Tx) (*dto.TreasuryEntryResponse, error) {
		client, err := s.clientSubledgerInTx(ctx, tx, invoice.CustomerID, creatorUserID)
		if err != nil {
			return nil, err
		}

		creditCode := client.ReceivableAccountCode
		if invoice.RevenueRecognizedAt == nil {
			creditCode, err = s.invoiceRevenueAccount(ctx, tx, invoice, client, creatorUserID)
			if err != nil {
				return nil, err
			}
		}

		payment := domain.Payment{
			InvoiceID: invoice.InvoiceID,
			Amount:    req.Amount,
			Method:    req.Method,
			PaidAt:    req.EntryDate,
			CreatedAt: time.Now().UTC(),
		}
		paymentID, err := s.invoiceRepo.SavePaymentInTx(ctx, tx, payment)
		if err != nil {
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}

		status := domain.InvoicePartial
		if paidSoFar.Add(req.Amount).GreaterThanOrEqual(invoice.Total) {
			status = domain.InvoicePaid
		}
		if err := s.invoiceRepo.UpdateInvoiceStatusInTx(ctx, tx, invoice.InvoiceID, status, creatorUserID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to update invoice status: %w", err)
		}

		entry, err := s.journalSvc.PostEntryInTx(ctx, tx, dto.CreateJournalEntryRequest{
			EntryDate:   req.EntryDate,
			Description: fmt.Sprintf("Payment received for invoice %d", invoice.InvoiceID),
			CustomerID:  &invoice.CustomerID,
			VehicleID:   invoice.VehicleID,
			InvoiceID:   &invoice.InvoiceID,
			Lines: []dto.CreateJournalLineRequest{
				{AccountCode: domain.CodeBank, Debit: amountBase},
				{AccountCode: creditCode, Credit: amountBase},
			},
		}, creatorUserID)
		if err != nil {
			return nil, err
		}

		s.LogInfo(ctx, "Invoice payment settled",
			slog.Int64("invoice_id", invoice.InvoiceID),
			slog.Int64("payment_id", paymentID),
			slog.String("status", string(status)),
			slog.String("entry_id", entry.EntryID))
		return &dto.TreasuryEntryResponse{Entry: dto.ToJournalEntryResponse(entry), PaymentID: &paymentID}, nil
	})
}

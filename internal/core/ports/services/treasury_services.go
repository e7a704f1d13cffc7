package services

import (
	"context"

	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

// TreasurySvcFacade is the catalog of business transactions the back office
// performs. Each operation posts a balanced journal entry and mutates the
// related business record inside one database transaction.
type TreasurySvcFacade interface {
	// ReceiveDeposit records trust money received from a customer.
	ReceiveDeposit(ctx context.Context, req dto.ReceiveDepositRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// RefundDeposit returns a held deposit to the customer.
	RefundDeposit(ctx context.Context, req dto.RefundDepositRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// PayAuctionFromDeposit spends a held deposit on an auction purchase.
	PayAuctionFromDeposit(ctx context.Context, req dto.PayAuctionFromDepositRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// RecognizeCommission moves earned commission from a customer's deposit
	// into revenue.
	RecognizeCommission(ctx context.Context, req dto.RecognizeCommissionRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// CapitalizeVehiclePurchase books a vehicle purchase into its asset
	// account, funded from bank, deposit or accounts payable.
	CapitalizeVehiclePurchase(ctx context.Context, req dto.CapitalizeVehiclePurchaseRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// RecordOperationalExpense books a freight, customs, storage or other
	// cost, converting foreign amounts into the base currency.
	RecordOperationalExpense(ctx context.Context, req dto.RecordOperationalExpenseRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// RecognizeInvoiceRevenue books an invoice's revenue against receivables
	// before payment arrives.
	RecognizeInvoiceRevenue(ctx context.Context, req dto.RecognizeInvoiceRevenueRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)

	// SettleInvoicePayment records a payment against an invoice and updates
	// its settlement status.
	SettleInvoicePayment(ctx context.Context, req dto.SettleInvoicePaymentRequest, creatorUserID string) (*dto.TreasuryEntryResponse, error)
}

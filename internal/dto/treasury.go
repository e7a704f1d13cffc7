package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// ReceiveDepositRequest records money received in trust from a customer.
type ReceiveDepositRequest struct {
	CustomerID   int64           `json:"customerID" binding:"required"`
	VehicleID    *int64          `json:"vehicleID"`
	AuctionID    *int64          `json:"auctionID"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode"`
	Method       string          `json:"method" binding:"required"`
	Reference    string          `json:"reference"`
	EntryDate    time.Time       `json:"entryDate" binding:"required"`
}

// RefundDepositRequest returns a held deposit to the customer.
type RefundDepositRequest struct {
	DepositID int64     `json:"depositID" binding:"required"`
	EntryDate time.Time `json:"entryDate" binding:"required"`
}

// PayAuctionFromDepositRequest spends a held deposit on an auction purchase.
type PayAuctionFromDepositRequest struct {
	DepositID int64           `json:"depositID" binding:"required"`
	AuctionID int64           `json:"auctionID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	EntryDate time.Time       `json:"entryDate" binding:"required"`
}

// RecognizeCommissionRequest moves earned commission out of a customer's
// deposit into revenue.
type RecognizeCommissionRequest struct {
	CustomerID  int64           `json:"customerID" binding:"required"`
	VehicleID   *int64          `json:"vehicleID"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	EntryDate   time.Time       `json:"entryDate" binding:"required"`
}

// CapitalizeVehiclePurchaseRequest books a vehicle purchase into its asset
// account. FromDeposit and OnCredit choose the funding side; at most one may
// be set.
type CapitalizeVehiclePurchaseRequest struct {
	VehicleID   int64           `json:"vehicleID" binding:"required"`
	CustomerID  *int64          `json:"customerID"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	FromDeposit bool            `json:"fromDeposit"`
	OnCredit    bool            `json:"onCredit"`
	Reference   string          `json:"reference"`
	EntryDate   time.Time       `json:"entryDate" binding:"required"`
}

// RecordOperationalExpenseRequest books a freight, customs, storage or other
// operational cost against a vehicle or customer.
type RecordOperationalExpenseRequest struct {
	VehicleID    *int64                 `json:"vehicleID"`
	CustomerID   *int64                 `json:"customerID"`
	AuctionID    *int64                 `json:"auctionID"`
	Category     domain.ExpenseCategory `json:"category" binding:"required,oneof=freight customs storage other"`
	Amount       decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode string                 `json:"currencyCode"`
	Description  string                 `json:"description" binding:"required"`
	Supplier     string                 `json:"supplier"`
	EntryDate    time.Time              `json:"entryDate" binding:"required"`
}

// RecognizeInvoiceRevenueRequest books an invoice's revenue before payment.
type RecognizeInvoiceRevenueRequest struct {
	InvoiceID int64     `json:"invoiceID" binding:"required"`
	EntryDate time.Time `json:"entryDate" binding:"required"`
}

// SettleInvoicePaymentRequest records a payment against an invoice.
type SettleInvoicePaymentRequest struct {
	InvoiceID int64           `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	EntryDate time.Time       `json:"entryDate" binding:"required"`
}

// TreasuryEntryResponse wraps the journal entry a treasury operation created,
// plus the identifier of the business record it touched.
type TreasuryEntryResponse struct {
	Entry     JournalEntryResponse `json:"entry"`
	DepositID *int64               `json:"depositID,omitempty"`
	ExpenseID *int64               `json:"expenseID,omitempty"`
	PaymentID *int64               `json:"paymentID,omitempty"`
}

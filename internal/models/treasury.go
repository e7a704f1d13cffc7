package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus mirrors domain.DepositStatus for DB storage.
type DepositStatus string

// CustomerDeposit is the customer_deposits table row.
type CustomerDeposit struct {
	DepositID    int64           `db:"deposit_id"`
	CustomerID   int64           `db:"customer_id"`
	VehicleID    *int64          `db:"vehicle_id"`
	AuctionID    *int64          `db:"auction_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	AmountBase   decimal.Decimal `db:"amount_base"`
	Method       string          `db:"method"`
	Reference    string          `db:"reference"`
	Status       DepositStatus   `db:"status"`
	ReceivedAt   time.Time       `db:"received_at"`
	RefundedAt   *time.Time      `db:"refunded_at"`
	CreatedAt    time.Time       `db:"created_at"`
}

// InvoiceStatus mirrors domain.InvoiceStatus for DB storage.
type InvoiceStatus string

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID           int64           `db:"invoice_id"`
	CustomerID          int64           `db:"customer_id"`
	VehicleID           *int64          `db:"vehicle_id"`
	InvoiceType         string          `db:"invoice_type"`
	Total               decimal.Decimal `db:"total"`
	CurrencyCode        string          `db:"currency_code"`
	Status              InvoiceStatus   `db:"status"`
	RevenueRecognizedAt *time.Time      `db:"revenue_recognized_at"`
	IssuedAt            time.Time       `db:"issued_at"`
	CreatedAt           time.Time       `db:"created_at"`
}

// Payment is the payments table row.
type Payment struct {
	PaymentID int64           `db:"payment_id"`
	InvoiceID int64           `db:"invoice_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	PaidAt    time.Time       `db:"paid_at"`
	CreatedAt time.Time       `db:"created_at"`
}

// OperationalExpense is the operational_expenses table row.
type OperationalExpense struct {
	ExpenseID        int64           `db:"expense_id"`
	VehicleID        *int64          `db:"vehicle_id"`
	CustomerID       *int64          `db:"customer_id"`
	AuctionID        *int64          `db:"auction_id"`
	Category         string          `db:"category"`
	OriginalAmount   decimal.Decimal `db:"original_amount"`
	OriginalCurrency string          `db:"original_currency"`
	Amount           decimal.Decimal `db:"amount"`
	ExchangeRateID   *string         `db:"exchange_rate_id"`
	Paid             bool            `db:"paid"`
	PaidAt           *time.Time      `db:"paid_at"`
	Description      string          `db:"description"`
	Supplier         string          `db:"supplier"`
	CreatedAt        time.Time       `db:"created_at"`
}

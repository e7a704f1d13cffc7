package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks settlement of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
)

// Invoice is a billing record owned by the wider back office. The ledger core
// reads amounts from it and mutates status and revenue-recognition fields as a
// side effect of posting; creation, numbering and rendering are external.
type Invoice struct {
	InvoiceID           int64           `json:"invoiceID"`
	CustomerID          int64           `json:"customerID"`
	VehicleID           *int64          `json:"vehicleID,omitempty"`
	InvoiceType         string          `json:"invoiceType"` // e.g. "service", "shipping", "sale"
	Total               decimal.Decimal `json:"total"`
	CurrencyCode        string          `json:"currencyCode"`
	Status              InvoiceStatus   `json:"status"`
	RevenueRecognizedAt *time.Time      `json:"revenueRecognizedAt,omitempty"`
	IssuedAt            time.Time       `json:"issuedAt"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// Payment settles part or all of an invoice.
type Payment struct {
	PaymentID int64           `json:"paymentID"`
	InvoiceID int64           `json:"invoiceID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	PaidAt    time.Time       `json:"paidAt"`
	CreatedAt time.Time       `json:"createdAt"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus tracks the lifecycle of a customer's trust-fund deposit.
type DepositStatus string

const (
	DepositHeld     DepositStatus = "held"
	DepositApplied  DepositStatus = "applied" // spent on the customer's behalf (e.g. auction payment)
	DepositRefunded DepositStatus = "refunded"
)

// CustomerDeposit is money received in trust from a customer, held against a
// future auction purchase. Deposits are client funds: the postings they drive
// never touch the business's own revenue or expense.
type CustomerDeposit struct {
	DepositID    int64           `json:"depositID"`
	CustomerID   int64           `json:"customerID"`
	VehicleID    *int64          `json:"vehicleID,omitempty"`
	AuctionID    *int64          `json:"auctionID,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	// AmountBase is the base-currency value booked at receipt. Refunds and
	// applications reverse this amount, not a re-conversion at a later rate,
	// so the deposit account always nets to zero after a round trip.
	AmountBase decimal.Decimal `json:"amountBase"`
	Method     string          `json:"method"`
	Reference    string          `json:"reference"`
	Status       DepositStatus   `json:"status"`
	ReceivedAt   time.Time       `json:"receivedAt"`
	RefundedAt   *time.Time      `json:"refundedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

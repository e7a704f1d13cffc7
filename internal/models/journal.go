package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus for DB storage.
type EntryStatus string

const (
	Pending  EntryStatus = "pending"
	Approved EntryStatus = "approved"
	Rejected EntryStatus = "rejected"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID      string      `db:"entry_id"`
	EntryDate    time.Time   `db:"entry_date"`
	Description  string      `db:"description"`
	Reference    string      `db:"reference"`
	CustomerID   *int64      `db:"customer_id"`
	VehicleID    *int64      `db:"vehicle_id"`
	AuctionID    *int64      `db:"auction_id"`
	InvoiceID    *int64      `db:"invoice_id"`
	IsClientFund bool        `db:"is_client_fund"`
	Status       EntryStatus `db:"status"`
	Notes        string      `db:"notes"`
	ApprovedBy   *string     `db:"approved_by"`
	ApprovedAt   *time.Time  `db:"approved_at"`
	AuditFields
}

// JournalLine is the journal_lines table row. Lines are owned by their entry
// and deleted with it.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountCode  string          `db:"account_code"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	CurrencyCode string          `db:"currency_code"`
}

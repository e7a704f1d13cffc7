package domain

import "time"

// EntryStatus indicates the workflow state of a journal entry.
// Entries default to approved; entries dated inside the books-lock window are
// created pending and must be explicitly approved. Rejected is reachable only
// through an explicit administrative action.
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

// EntryLinks names the business records a journal entry may point at.
// A nil field means the link is absent.
type EntryLinks struct {
	CustomerID *int64 `json:"customerID,omitempty"`
	VehicleID  *int64 `json:"vehicleID,omitempty"`
	AuctionID  *int64 `json:"auctionID,omitempty"`
	InvoiceID  *int64 `json:"invoiceID,omitempty"`
}

// JournalEntry is a single dated accounting event composed of balanced
// debit/credit lines. Entries are append-only: once posted, only the workflow
// fields (status, approver, approval timestamp) may change.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`
	EntryDate    time.Time   `json:"entryDate"`
	Description  string      `json:"description"`
	Reference    string      `json:"reference"`
	Links        EntryLinks  `json:"links"`
	IsClientFund bool        `json:"isClientFund"`
	Status       EntryStatus `json:"status"`
	Notes        string      `json:"notes"`
	ApprovedBy   *string     `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time  `json:"approvedAt,omitempty"`
	AuditFields

	// Lines are loaded separately for list operations; GetEntryByID populates them.
	Lines []JournalLine `json:"lines,omitempty"`
}

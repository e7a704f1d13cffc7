package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// CreateJournalLineRequest defines one debit or credit line of a new entry.
// Exactly one of debit and credit should be nonzero; both must be non-negative.
type CreateJournalLineRequest struct {
	AccountCode  string          `json:"accountCode" binding:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
}

// CreateJournalEntryRequest defines the data needed to post a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate    time.Time                  `json:"entryDate" binding:"required"`
	Description  string                     `json:"description" binding:"required"`
	Reference    string                     `json:"reference"`
	CustomerID   *int64                     `json:"customerID"`
	VehicleID    *int64                     `json:"vehicleID"`
	AuctionID    *int64                     `json:"auctionID"`
	InvoiceID    *int64                     `json:"invoiceID"`
	IsClientFund bool                       `json:"isClientFund"`
	Notes        string                     `json:"notes"`
	Lines        []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountCode  string          `json:"accountCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	Reference    string                `json:"reference"`
	CustomerID   *int64                `json:"customerID,omitempty"`
	VehicleID    *int64                `json:"vehicleID,omitempty"`
	AuctionID    *int64                `json:"auctionID,omitempty"`
	InvoiceID    *int64                `json:"invoiceID,omitempty"`
	IsClientFund bool                  `json:"isClientFund"`
	Status       domain.EntryStatus    `json:"status"`
	Notes        string                `json:"notes,omitempty"`
	ApprovedBy   *string               `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time            `json:"approvedAt,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	From       *time.Time          `form:"from" time_format:"2006-01-02"`
	To         *time.Time          `form:"to" time_format:"2006-01-02"`
	CustomerID *int64              `form:"customerID"`
	VehicleID  *int64              `form:"vehicleID"`
	Status     *domain.EntryStatus `form:"status"`
	Limit      int                 `form:"limit,default=50"`
	NextToken  *string             `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of entries with the pagination token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ReviewJournalEntryRequest carries the reviewer's note for an approve or
// reject action.
type ReviewJournalEntryRequest struct {
	Notes string `json:"notes"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		AccountCode:  l.AccountCode,
		Debit:        l.Debit,
		Credit:       l.Credit,
		CurrencyCode: l.CurrencyCode,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry (with lines, if
// loaded) to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		Reference:    e.Reference,
		CustomerID:   e.Links.CustomerID,
		VehicleID:    e.Links.VehicleID,
		AuctionID:    e.Links.AuctionID,
		InvoiceID:    e.Links.InvoiceID,
		IsClientFund: e.IsClientFund,
		Status:       e.Status,
		Notes:        e.Notes,
		ApprovedBy:   e.ApprovedBy,
		ApprovedAt:   e.ApprovedAt,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&l)
		}
	}
	return resp
}

// ToListJournalEntriesResponse converts a page of domain entries to the list DTO.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToJournalEntryResponse(&e)
	}
	return ListJournalEntriesResponse{Entries: res, NextToken: nextToken}
}

package mapping

import (
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		Reference:    d.Reference,
		CustomerID:   d.Links.CustomerID,
		VehicleID:    d.Links.VehicleID,
		AuctionID:    d.Links.AuctionID,
		InvoiceID:    d.Links.InvoiceID,
		IsClientFund: d.IsClientFund,
		Status:       models.EntryStatus(d.Status),
		Notes:        d.Notes,
		ApprovedBy:   d.ApprovedBy,
		ApprovedAt:   d.ApprovedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Reference:   m.Reference,
		Links: domain.EntryLinks{
			CustomerID: m.CustomerID,
			VehicleID:  m.VehicleID,
			AuctionID:  m.AuctionID,
			InvoiceID:  m.InvoiceID,
		},
		IsClientFund: m.IsClientFund,
		Status:       domain.EntryStatus(m.Status),
		Notes:        m.Notes,
		ApprovedBy:   m.ApprovedBy,
		ApprovedAt:   m.ApprovedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountCode:  d.AccountCode,
		Debit:        d.Debit,
		Credit:       d.Credit,
		CurrencyCode: d.CurrencyCode,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountCode:  m.AccountCode,
		Debit:        m.Debit,
		Credit:       m.Credit,
		CurrencyCode: m.CurrencyCode,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

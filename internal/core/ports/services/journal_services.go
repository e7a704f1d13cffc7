package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated, filtered list of journal entries.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostEntry validates and persists a balanced journal entry. The entry
	// lands approved unless its date falls inside the books-lock window, in
	// which case it is created pending.
	PostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostEntryInTx is PostEntry running inside a caller-owned transaction,
	// for operations that must atomically pair a posting with other writes.
	PostEntryInTx(ctx context.Context, tx pgx.Tx, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// ApproveEntry transitions a pending entry to approved.
	ApproveEntry(ctx context.Context, entryID string, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error)

	// RejectEntry transitions a pending entry to rejected.
	RejectEntry(ctx context.Context, entryID string, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

package repositories

import (
	"context"
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryFilter narrows ListEntries results. Nil fields are ignored.
type EntryFilter struct {
	From       *time.Time
	To         *time.Time
	CustomerID *int64
	VehicleID  *int64
	Status     *domain.EntryStatus
}

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines owned by a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a filtered, token-paginated list of entries.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveEntry persists an entry and its lines atomically in its own transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveEntryInTx persists an entry and its lines within an existing
	// transaction, so callers can combine the posting with other writes.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryStatus changes only the workflow fields of an entry.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, approvedBy *string, approvedAt *time.Time, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}

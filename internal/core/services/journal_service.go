package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = errors.New("journal entry does not balance")
	ErrEntryMinLines      = errors.New("journal entry must have at least two lines")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrDescriptionMissing = errors.New("journal entry description is required")
	ErrEntryNotPending    = errors.New("journal entry is not pending review")
)

// journalService provides the posting engine: validation, lock-window status
// resolution and atomic persistence of balanced entries.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	settingsRepo portsrepo.SettingsReader
	baseCurrency string
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, settingsRepo portsrepo.SettingsReader, baseCurrency string) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		settingsRepo: settingsRepo,
		baseCurrency: baseCurrency,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildEntry validates the request and assembles the domain entry and lines.
// Every failure is a hard error: a posting either lands whole or not at all.
func (s *journalService) buildEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	if req.Description == "" {
		return nil, nil, fmt.Errorf("%w", ErrDescriptionMissing)
	}
	if len(req.Lines) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrEntryMinLines, len(req.Lines))
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	codes := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		currency := lineReq.CurrencyCode
		if currency == "" {
			currency = s.baseCurrency
		}
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountCode:  lineReq.AccountCode,
			Debit:        lineReq.Debit,
			Credit:       lineReq.Credit,
			CurrencyCode: currency,
		}
		codes = append(codes, lineReq.AccountCode)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrEntryUnbalanced, err)
	}

	// Every referenced account must exist and be active. A missing account
	// fails the whole posting instead of silently dropping its line.
	accountsMap, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for posting")
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accountsMap[code]
		if !found {
			return nil, nil, fmt.Errorf("%w: %s", ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return nil, nil, fmt.Errorf("%w: %s", ErrAccountInactive, code)
		}
	}

	status, err := s.resolveStatus(ctx, req.EntryDate)
	if err != nil {
		return nil, nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Links: domain.EntryLinks{
			CustomerID: req.CustomerID,
			VehicleID:  req.VehicleID,
			AuctionID:  req.AuctionID,
			InvoiceID:  req.InvoiceID,
		},
		IsClientFund: req.IsClientFund,
		Status:       status,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	return &entry, lines, nil
}

// resolveStatus applies the books-lock guard: entries dated on or before the
// lock cutoff are created pending and must be approved explicitly.
func (s *journalService) resolveStatus(ctx context.Context, entryDate time.Time) (domain.EntryStatus, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings for lock check")
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.BooksLockedUntil != nil && !entryDate.After(*settings.BooksLockedUntil) {
		return domain.StatusPending, nil
	}
	return domain.StatusApproved, nil
}

// PostEntry validates and persists a balanced journal entry atomically.
func (s *journalService) PostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entry, lines, err := s.buildEntry(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)),
		slog.Int("lines", len(lines)))

	entry.Lines = lines
	return entry, nil
}

// PostEntryInTx is PostEntry running inside a caller-owned transaction.
func (s *journalService) PostEntryInTx(ctx context.Context, tx pgx.Tx, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entry, lines, err := s.buildEntry(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry in transaction", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	entry.Lines = lines
	return entry, nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}

	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated, filtered list of journal entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := portsrepo.EntryFilter{
		From:       params.From,
		To:         params.To,
		CustomerID: params.CustomerID,
		VehicleID:  params.VehicleID,
		Status:     params.Status,
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &resp, nil
}

// ApproveEntry transitions a pending entry to approved.
func (s *journalService) ApproveEntry(ctx context.Context, entryID string, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error) {
	return s.reviewEntry(ctx, entryID, domain.StatusApproved, req, approverUserID)
}

// RejectEntry transitions a pending entry to rejected.
func (s *journalService) RejectEntry(ctx context.Context, entryID string, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error) {
	return s.reviewEntry(ctx, entryID, domain.StatusRejected, req, approverUserID)
}

func (s *journalService) reviewEntry(ctx context.Context, entryID string, target domain.EntryStatus, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	// Only pending entries move; approved and rejected are terminal.
	if entry.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: entry %s is %s: %w", ErrEntryNotPending, entryID, entry.Status, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, target, &approverUserID, &now, approverUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry status", slog.String("entry_id", entryID), slog.String("target", string(target)))
		return nil, fmt.Errorf("failed to update entry %s status: %w", entryID, err)
	}

	s.LogInfo(ctx, "Journal entry reviewed",
		slog.String("entry_id", entryID),
		slog.String("status", string(target)),
		slog.String("by", approverUserID),
		slog.String("notes", req.Notes))

	entry.Status = target
	entry.ApprovedBy = &approverUserID
	entry.ApprovedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = approverUserID
	return entry, nil
}

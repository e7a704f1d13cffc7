package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

var (
	ErrAccountCodeTaken = errors.New("account code already exists")
	ErrBadAccountCode   = errors.New("account code must start with its type prefix")
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithCurrencyRepository sets the currency repository used to validate
// account currencies on creation.
func WithCurrencyRepository(repo portsrepo.CurrencyRepositoryFacade) AccountServiceOption {
	return func(s *accountService) {
		s.currencyRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// typePrefixes maps each account type to the code prefix the convention
// requires; the hierarchy (sub-ledger derivation, report scoping) depends on
// codes matching their type.
var typePrefixes = map[domain.AccountType]string{
	domain.Asset:     domain.PrefixAsset,
	domain.Liability: domain.PrefixLiability,
	domain.Equity:    domain.PrefixEquity,
	domain.Revenue:   domain.PrefixRevenue,
	domain.Expense:   domain.PrefixExpense,
}

// CreateAccount persists a new account after validating its code convention.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	prefix, ok := typePrefixes[req.AccountType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !strings.HasPrefix(code, prefix) {
		return nil, fmt.Errorf("%w: code %q for type %s", ErrBadAccountCode, code, req.AccountType)
	}

	if s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency %q not found", apperrors.ErrValidation, req.CurrencyCode)
			}
			return nil, fmt.Errorf("failed to validate currency %q: %w", req.CurrencyCode, err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:         code,
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("code", code), slog.String("type", string(req.AccountType)))
	return &account, nil
}

// GetAccountByCode retrieves a specific account by its ledger code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes retrieves multiple accounts keyed by code in one
// round-trip.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			normalized = append(normalized, code)
		}
	}
	if len(normalized) == 0 {
		return map[string]domain.Account{}, nil
	}

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, normalized)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by codes", slog.Int("code_count", len(normalized)))
		return nil, fmt.Errorf("failed to find accounts by codes: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive. Inactive accounts keep
// their history but reject new postings.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, requestingUserID string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err != nil {
		return fmt.Errorf("failed to find account %s: %w", code, err)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, code, requestingUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("code", code))
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("code", code), slog.String("by", requestingUserID))
	return nil
}

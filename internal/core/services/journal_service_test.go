package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/core/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, approvedBy *string, approvedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, approvedBy, approvedAt, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) EnsureAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	args := m.Called(ctx, code, userID, now)
	return args.Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	mockSettingsRepo *MockSettingsRepository
	service          portssvc.JournalSvcFacade
	bankAccount      domain.Account
	depositAccount   domain.Account
	revenueAccount   domain.Account
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockSettingsRepo, "OMR")

	suite.userID = "bookkeeper"

	suite.bankAccount = domain.Account{
		Code:         domain.CodeBank,
		AccountType:  domain.Asset,
		CurrencyCode: "OMR",
		IsActive:     true,
	}
	suite.depositAccount = domain.Account{
		Code:         "L200-C00007",
		AccountType:  domain.Liability,
		CurrencyCode: "OMR",
		IsActive:     true,
	}
	suite.revenueAccount = domain.Account{
		Code:         domain.CodeServiceRevenue,
		AccountType:  domain.Revenue,
		CurrencyCode: "OMR",
		IsActive:     true,
	}
}

func (suite *JournalServiceTestSuite) unlockedSettings() *domain.Settings {
	return &domain.Settings{AccountingMethod: "accrual"}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Deposit received",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(500)},
			{AccountCode: suite.depositAccount.Code, Credit: decimal.NewFromInt(500)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.Code:    suite.bankAccount,
		suite.depositAccount.Code: suite.depositAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{suite.bankAccount.Code, suite.depositAccount.Code}).Return(accountsMap, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(suite.unlockedSettings(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.StatusApproved, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Require().Len(entry.Lines, 2)
	// Lines without an explicit currency inherit the base currency.
	suite.Equal("OMR", entry.Lines[0].CurrencyCode)
	suite.Equal(entry.EntryID, entry.Lines[0].EntryID)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockSettingsRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_BooksLocked() {
	ctx := context.Background()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	lockedUntil := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	req := dto.CreateJournalEntryRequest{
		EntryDate:   entryDate,
		Description: "Backdated correction",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(100)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.Code:    suite.bankAccount,
		suite.revenueAccount.Code: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(&domain.Settings{BooksLockedUntil: &lockedUntil}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_MissingDescription() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_LessThanTwoLines() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Single sided",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Does not balance",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(99)},
		},
	}

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByCodes", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Unknown account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: "R999", Credit: decimal.NewFromInt(100)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.Code: suite.bankAccount,
		// R999 is missing
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AccountInactive() {
	ctx := context.Background()
	inactive := domain.Account{
		Code:         "E200",
		AccountType:  domain.Expense,
		CurrencyCode: "OMR",
		IsActive:     false,
	}
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Posting to closed account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: inactive.Code, Debit: decimal.NewFromInt(50)},
			{AccountCode: suite.bankAccount.Code, Credit: decimal.NewFromInt(50)},
		},
	}

	accountsMap := map[string]domain.Account{
		inactive.Code:          inactive,
		suite.bankAccount.Code: suite.bankAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_SaveError() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Save fails",
		Lines: []dto.CreateJournalLineRequest{
			{AccountCode: suite.bankAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(100)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.Code:    suite.bankAccount,
		suite.revenueAccount.Code: suite.revenueAccount,
	}
	repoErr := assert.AnError
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(suite.unlockedSettings(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_Success() {
	ctx := context.Background()
	entryID := "entry-1"
	entry := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusApproved}
	lines := []domain.JournalLine{
		{LineID: "line-1", EntryID: entryID, AccountCode: domain.CodeBank, Debit: decimal.NewFromInt(100)},
		{LineID: "line-2", EntryID: entryID, AccountCode: domain.CodeServiceRevenue, Credit: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	found, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Equal(entryID, found.EntryID)
	suite.Len(found.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntryByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	suite.mockJournalRepo.On("ListEntries", ctx, mock.AnythingOfType("repositories.EntryFilter"), 50, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, dto.ListJournalEntriesParams{Limit: 0})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Empty(resp.Entries)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_Success() {
	ctx := context.Background()
	entryID := "entry-pending"
	entry := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPending}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", ctx, entryID, domain.StatusApproved, mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reviewed, err := suite.service.ApproveEntry(ctx, entryID, dto.ReviewJournalEntryRequest{Notes: "ok"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, reviewed.Status)
	suite.Require().NotNil(reviewed.ApprovedBy)
	suite.Equal(suite.userID, *reviewed.ApprovedBy)
	suite.NotNil(reviewed.ApprovedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRejectEntry_Success() {
	ctx := context.Background()
	entryID := "entry-pending"
	entry := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPending}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("UpdateEntryStatus", ctx, entryID, domain.StatusRejected, mock.Anything, mock.Anything, suite.userID, mock.Anything).Return(nil).Once()

	reviewed, err := suite.service.RejectEntry(ctx, entryID, dto.ReviewJournalEntryRequest{Notes: "duplicate posting"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, reviewed.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_NotPending() {
	ctx := context.Background()
	entryID := "entry-approved"
	entry := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusApproved}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entryID, dto.ReviewJournalEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotPending)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalWriterSvc ---
type MockJournalWriterSvc struct {
	mock.Mock
}

var _ portssvc.JournalWriterSvc = (*MockJournalWriterSvc)(nil)

func (m *MockJournalWriterSvc) PostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriterSvc) PostEntryInTx(ctx context.Context, tx pgx.Tx, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriterSvc) ApproveEntry(ctx context.Context, entryID string, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalWriterSvc) RejectEntry(ctx context.Context, entryID string, req dto.ReviewJournalEntryRequest, approverUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock SubledgerSvc ---
type MockSubledgerSvc struct {
	mock.Mock
}

var _ portssvc.SubledgerSvcFacade = (*MockSubledgerSvc)(nil)

func (m *MockSubledgerSvc) EnsureClientSubledger(ctx context.Context, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientSubledger), args.Error(1)
}

func (m *MockSubledgerSvc) EnsureClientSubledgerInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionClientSubledgerRequest, creatorUserID string) (*domain.ClientSubledger, error) {
	args := m.Called(ctx, tx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientSubledger), args.Error(1)
}

func (m *MockSubledgerSvc) EnsureVehicleSubledger(ctx context.Context, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSubledger), args.Error(1)
}

func (m *MockSubledgerSvc) EnsureVehicleSubledgerInTx(ctx context.Context, tx pgx.Tx, req dto.ProvisionVehicleSubledgerRequest, creatorUserID string) (*domain.VehicleSubledger, error) {
	args := m.Called(ctx, tx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSubledger), args.Error(1)
}

func (m *MockSubledgerSvc) GetClientSubledger(ctx context.Context, customerID int64) (*domain.ClientSubledger, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientSubledger), args.Error(1)
}

func (m *MockSubledgerSvc) GetVehicleSubledger(ctx context.Context, vehicleID int64) (*domain.VehicleSubledger, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSubledger), args.Error(1)
}

// --- Mock CurrencyConverter ---
type MockCurrencyConverter struct {
	mock.Mock
}

var _ portssvc.CurrencyConverterSvc = (*MockCurrencyConverter)(nil)

func (m *MockCurrencyConverter) Rate(ctx context.Context, fromCurrency string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCurrency, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCurrencyConverter) ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCurrency, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock DepositRepository ---
type MockDepositRepository struct {
	mock.Mock
}

var _ portsrepo.DepositRepositoryFacade = (*MockDepositRepository)(nil)

func (m *MockDepositRepository) FindDepositByID(ctx context.Context, depositID int64) (*domain.CustomerDeposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerDeposit), args.Error(1)
}

func (m *MockDepositRepository) ListDepositsByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerDeposit, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerDeposit), args.Error(1)
}

func (m *MockDepositRepository) SaveDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.CustomerDeposit) (int64, error) {
	args := m.Called(ctx, tx, deposit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepositRepository) UpdateDepositStatusInTx(ctx context.Context, tx pgx.Tx, depositID int64, status domain.DepositStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, depositID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SumPaymentsByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error) {
	args := m.Called(ctx, tx, invoice)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) MarkInvoiceRecognizedInTx(ctx context.Context, tx pgx.Tx, invoiceID int64, recognizedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, tx, invoiceID, recognizedAt, updatedBy)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID int64, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, invoiceID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) (int64, error) {
	args := m.Called(ctx, tx, payment)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.OperationalExpense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationalExpense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByVehicle(ctx context.Context, vehicleID int64) ([]domain.OperationalExpense, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperationalExpense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.OperationalExpense) (int64, error) {
	args := m.Called(ctx, tx, expense)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---
type TreasuryServiceTestSuite struct {
	suite.Suite
	mockTxManager    *MockTxManager
	mockJournalSvc   *MockJournalWriterSvc
	mockSubledgerSvc *MockSubledgerSvc
	mockConverter    *MockCurrencyConverter
	mockDepositRepo  *MockDepositRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockExpenseRepo  *MockExpenseRepository
	service          portssvc.TreasurySvcFacade
	client           *domain.ClientSubledger
	vehicle          *domain.VehicleSubledger
	entryDate        time.Time
	userID           string
}

func (suite *TreasuryServiceTestSuite) SetupTest() {
	suite.mockTxManager = new(MockTxManager)
	suite.mockJournalSvc = new(MockJournalWriterSvc)
	suite.mockSubledgerSvc = new(MockSubledgerSvc)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.mockDepositRepo = new(MockDepositRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewTreasuryService(
		suite.mockTxManager,
		suite.mockJournalSvc,
		suite.mockSubledgerSvc,
		suite.mockConverter,
		suite.mockDepositRepo,
		suite.mockInvoiceRepo,
		suite.mockExpenseRepo,
		"OMR",
	)

	suite.userID = "bookkeeper"
	suite.entryDate = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	suite.client = &domain.ClientSubledger{
		CustomerID:                  7,
		DepositAccountCode:          "L200-C00007",
		AuctionAccountCode:          "A150-C00007",
		ServiceRevenueAccountCode:   "R300-C00007",
		LogisticsExpenseAccountCode: "E210-C00007",
		ReceivableAccountCode:       "A130-C00007",
		CurrencyCode:                "OMR",
	}
	suite.vehicle = &domain.VehicleSubledger{
		VehicleID:             123,
		DepositAccountCode:    "L200-V000123",
		AuctionAccountCode:    "A200-V000123",
		FreightAccountCode:    "E210-V000123",
		CustomsAccountCode:    "E220-V000123",
		CommissionAccountCode: "R150-V000123",
		StorageAccountCode:    "E230-V000123",
		CurrencyCode:          "OMR",
	}
}

// expectTx wires the Begin/Commit pair every successful operation runs through.
func (suite *TreasuryServiceTestSuite) expectTx() {
	suite.mockTxManager.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTxManager.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *TreasuryServiceTestSuite) postedEntry() *domain.JournalEntry {
	return &domain.JournalEntry{EntryID: "entry-1", EntryDate: suite.entryDate, Status: domain.StatusApproved}
}

// --- Test Cases ---

func (suite *TreasuryServiceTestSuite) TestReceiveDeposit_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(500)
	req := dto.ReceiveDepositRequest{
		CustomerID: 7,
		Amount:     amount,
		Method:     "bank_transfer",
		EntryDate:  suite.entryDate,
	}

	suite.mockConverter.On("ConvertToBase", ctx, amount, "OMR", suite.entryDate).Return(amount, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.AnythingOfType("dto.ProvisionClientSubledgerRequest"), suite.userID).Return(suite.client, nil).Once()
	suite.mockDepositRepo.On("SaveDepositInTx", ctx, mock.Anything, mock.MatchedBy(func(d domain.CustomerDeposit) bool {
		return d.CustomerID == 7 && d.Status == domain.DepositHeld && d.Amount.Equal(amount) && d.AmountBase.Equal(amount)
	})).Return(int64(11), nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.IsClientFund &&
			r.Lines[0].AccountCode == domain.CodeBank && r.Lines[0].Debit.Equal(amount) &&
			r.Lines[1].AccountCode == suite.client.DepositAccountCode && r.Lines[1].Credit.Equal(amount)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	resp, err := suite.service.ReceiveDeposit(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.DepositID)
	suite.Equal(int64(11), *resp.DepositID)
	suite.Equal("entry-1", resp.Entry.EntryID)

	suite.mockDepositRepo.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestReceiveDeposit_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.ReceiveDepositRequest{CustomerID: 7, Amount: decimal.Zero, Method: "cash", EntryDate: suite.entryDate}

	_, err := suite.service.ReceiveDeposit(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TreasuryServiceTestSuite) TestRefundDeposit_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(500)
	deposit := &domain.CustomerDeposit{
		DepositID:    11,
		CustomerID:   7,
		Amount:       amount,
		CurrencyCode: "OMR",
		AmountBase:   amount,
		Status:       domain.DepositHeld,
	}

	suite.mockDepositRepo.On("FindDepositByID", ctx, int64(11)).Return(deposit, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockDepositRepo.On("UpdateDepositStatusInTx", ctx, mock.Anything, int64(11), domain.DepositRefunded, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.IsClientFund &&
			r.Lines[0].AccountCode == suite.client.DepositAccountCode && r.Lines[0].Debit.Equal(amount) &&
			r.Lines[1].AccountCode == domain.CodeBank && r.Lines[1].Credit.Equal(amount)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	resp, err := suite.service.RefundDeposit(ctx, dto.RefundDepositRequest{DepositID: 11, EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(11), *resp.DepositID)
	suite.mockDepositRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestRefundDeposit_NotHeld() {
	ctx := context.Background()
	deposit := &domain.CustomerDeposit{DepositID: 11, CustomerID: 7, Status: domain.DepositApplied}

	suite.mockDepositRepo.On("FindDepositByID", ctx, int64(11)).Return(deposit, nil).Once()

	_, err := suite.service.RefundDeposit(ctx, dto.RefundDepositRequest{DepositID: 11, EntryDate: suite.entryDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDepositNotHeld)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// A foreign-currency deposit is refunded at the base amount booked when it was
// received, even when the rate has moved since. The converter is never
// consulted, so the deposit account nets to exactly zero.
func (suite *TreasuryServiceTestSuite) TestRefundDeposit_ReversesBookedBaseAmount() {
	ctx := context.Background()
	bookedBase := decimal.RequireFromString("385.000")
	deposit := &domain.CustomerDeposit{
		DepositID:    11,
		CustomerID:   7,
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "USD",
		AmountBase:   bookedBase,
		Status:       domain.DepositHeld,
	}

	suite.mockDepositRepo.On("FindDepositByID", ctx, int64(11)).Return(deposit, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockDepositRepo.On("UpdateDepositStatusInTx", ctx, mock.Anything, int64(11), domain.DepositRefunded, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.Lines[0].AccountCode == suite.client.DepositAccountCode && r.Lines[0].Debit.Equal(bookedBase) &&
			r.Lines[1].AccountCode == domain.CodeBank && r.Lines[1].Credit.Equal(bookedBase)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	_, err := suite.service.RefundDeposit(ctx, dto.RefundDepositRequest{DepositID: 11, EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.mockConverter.AssertNotCalled(suite.T(), "ConvertToBase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestPayAuctionFromDeposit_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(450)
	deposit := &domain.CustomerDeposit{
		DepositID:    11,
		CustomerID:   7,
		Amount:       decimal.NewFromInt(500),
		CurrencyCode: "OMR",
		AmountBase:   decimal.NewFromInt(500),
		Status:       domain.DepositHeld,
	}

	suite.mockDepositRepo.On("FindDepositByID", ctx, int64(11)).Return(deposit, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockDepositRepo.On("UpdateDepositStatusInTx", ctx, mock.Anything, int64(11), domain.DepositApplied, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.IsClientFund && r.AuctionID != nil && *r.AuctionID == 900 &&
			r.Lines[0].AccountCode == suite.client.DepositAccountCode && r.Lines[0].Debit.Equal(amount) &&
			r.Lines[1].AccountCode == domain.CodeBank && r.Lines[1].Credit.Equal(amount)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	resp, err := suite.service.PayAuctionFromDeposit(ctx, dto.PayAuctionFromDepositRequest{DepositID: 11, AuctionID: 900, Amount: amount, EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(resp.DepositID)
	suite.mockDepositRepo.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

// Applying part of a foreign-currency deposit releases the pro-rata share of
// the base amount booked at receipt, not a conversion at the apply date.
func (suite *TreasuryServiceTestSuite) TestPayAuctionFromDeposit_ProRataBookedRate() {
	ctx := context.Background()
	deposit := &domain.CustomerDeposit{
		DepositID:    11,
		CustomerID:   7,
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "USD",
		AmountBase:   decimal.RequireFromString("385.000"),
		Status:       domain.DepositHeld,
	}
	// 400 of 1000 USD at the booked rate: 400 * 385.000 / 1000 = 154.000 OMR.
	wantBase := decimal.RequireFromString("154.000")

	suite.mockDepositRepo.On("FindDepositByID", ctx, int64(11)).Return(deposit, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockDepositRepo.On("UpdateDepositStatusInTx", ctx, mock.Anything, int64(11), domain.DepositApplied, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.Lines[0].Debit.Equal(wantBase) && r.Lines[1].Credit.Equal(wantBase)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	_, err := suite.service.PayAuctionFromDeposit(ctx, dto.PayAuctionFromDepositRequest{DepositID: 11, AuctionID: 900, Amount: decimal.NewFromInt(400), EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.mockConverter.AssertNotCalled(suite.T(), "ConvertToBase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestPayAuctionFromDeposit_ExceedsHeldAmount() {
	ctx := context.Background()
	deposit := &domain.CustomerDeposit{
		DepositID:    11,
		CustomerID:   7,
		Amount:       decimal.NewFromInt(500),
		CurrencyCode: "OMR",
		AmountBase:   decimal.NewFromInt(500),
		Status:       domain.DepositHeld,
	}

	suite.mockDepositRepo.On("FindDepositByID", ctx, int64(11)).Return(deposit, nil).Once()

	_, err := suite.service.PayAuctionFromDeposit(ctx, dto.PayAuctionFromDepositRequest{DepositID: 11, AuctionID: 900, Amount: decimal.NewFromInt(600), EntryDate: suite.entryDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountExceedsDeposit)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TreasuryServiceTestSuite) TestRecognizeCommission_UsesVehicleAccount() {
	ctx := context.Background()
	vehicleID := int64(123)
	amount := decimal.NewFromInt(150)
	req := dto.RecognizeCommissionRequest{
		CustomerID:  7,
		VehicleID:   &vehicleID,
		Amount:      amount,
		Description: "Commission for Camry import",
		EntryDate:   suite.entryDate,
	}

	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockSubledgerSvc.On("EnsureVehicleSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.vehicle, nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.IsClientFund &&
			r.Lines[0].AccountCode == suite.client.DepositAccountCode &&
			r.Lines[1].AccountCode == suite.vehicle.CommissionAccountCode
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	_, err := suite.service.RecognizeCommission(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockSubledgerSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestCapitalizeVehiclePurchase_FundingConflict() {
	ctx := context.Background()
	customerID := int64(7)
	req := dto.CapitalizeVehiclePurchaseRequest{
		VehicleID:   123,
		CustomerID:  &customerID,
		Amount:      decimal.NewFromInt(3000),
		FromDeposit: true,
		OnCredit:    true,
		EntryDate:   suite.entryDate,
	}

	_, err := suite.service.CapitalizeVehiclePurchase(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFundingConflict)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TreasuryServiceTestSuite) TestCapitalizeVehiclePurchase_FromDepositNeedsCustomer() {
	ctx := context.Background()
	req := dto.CapitalizeVehiclePurchaseRequest{
		VehicleID:   123,
		Amount:      decimal.NewFromInt(3000),
		FromDeposit: true,
		EntryDate:   suite.entryDate,
	}

	_, err := suite.service.CapitalizeVehiclePurchase(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMissingCustomer)
}

func (suite *TreasuryServiceTestSuite) TestCapitalizeVehiclePurchase_OnCredit() {
	ctx := context.Background()
	amount := decimal.NewFromInt(3000)
	req := dto.CapitalizeVehiclePurchaseRequest{
		VehicleID: 123,
		Amount:    amount,
		OnCredit:  true,
		EntryDate: suite.entryDate,
	}

	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureVehicleSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.vehicle, nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return !r.IsClientFund &&
			r.Lines[0].AccountCode == suite.vehicle.AuctionAccountCode && r.Lines[0].Debit.Equal(amount) &&
			r.Lines[1].AccountCode == domain.CodeAccountsPayable && r.Lines[1].Credit.Equal(amount)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	_, err := suite.service.CapitalizeVehiclePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockTxManager.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestRecordOperationalExpense_MissingOwner() {
	ctx := context.Background()
	req := dto.RecordOperationalExpenseRequest{
		Category:    domain.ExpenseFreight,
		Amount:      decimal.NewFromInt(200),
		Description: "Shipping",
		EntryDate:   suite.entryDate,
	}

	_, err := suite.service.RecordOperationalExpense(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMissingOwner)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TreasuryServiceTestSuite) TestRecordOperationalExpense_VehicleFreight() {
	ctx := context.Background()
	vehicleID := int64(123)
	amount := decimal.NewFromInt(520)
	converted := decimal.RequireFromString("199.94")
	req := dto.RecordOperationalExpenseRequest{
		VehicleID:    &vehicleID,
		Category:     domain.ExpenseFreight,
		Amount:       amount,
		CurrencyCode: "USD",
		Description:  "Ocean freight Sohar",
		EntryDate:    suite.entryDate,
	}

	suite.mockConverter.On("ConvertToBase", ctx, amount, "USD", suite.entryDate).Return(converted, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureVehicleSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.vehicle, nil).Once()
	suite.mockExpenseRepo.On("SaveExpenseInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.OperationalExpense) bool {
		return e.Category == domain.ExpenseFreight &&
			e.OriginalAmount.Equal(amount) && e.OriginalCurrency == "USD" &&
			e.Amount.Equal(converted) && e.Paid
	})).Return(int64(31), nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.Lines[0].AccountCode == suite.vehicle.FreightAccountCode && r.Lines[0].Debit.Equal(converted) &&
			r.Lines[1].AccountCode == domain.CodeBank && r.Lines[1].Credit.Equal(converted)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	resp, err := suite.service.RecordOperationalExpense(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.ExpenseID)
	suite.Equal(int64(31), *resp.ExpenseID)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestRecognizeInvoiceRevenue_AlreadyRecognized() {
	ctx := context.Background()
	recognizedAt := suite.entryDate.AddDate(0, -1, 0)
	invoice := &domain.Invoice{InvoiceID: 21, CustomerID: 7, Total: decimal.NewFromInt(300), CurrencyCode: "OMR", RevenueRecognizedAt: &recognizedAt}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(21)).Return(invoice, nil).Once()

	_, err := suite.service.RecognizeInvoiceRevenue(ctx, dto.RecognizeInvoiceRevenueRequest{InvoiceID: 21, EntryDate: suite.entryDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyRecognized)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TreasuryServiceTestSuite) TestRecognizeInvoiceRevenue_Success() {
	ctx := context.Background()
	total := decimal.NewFromInt(300)
	invoice := &domain.Invoice{InvoiceID: 21, CustomerID: 7, Total: total, CurrencyCode: "OMR", Status: domain.InvoiceUnpaid}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(21)).Return(invoice, nil).Once()
	suite.mockConverter.On("ConvertToBase", ctx, total, "OMR", suite.entryDate).Return(total, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockInvoiceRepo.On("MarkInvoiceRecognizedInTx", ctx, mock.Anything, int64(21), suite.entryDate, suite.userID).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.Lines[0].AccountCode == suite.client.ReceivableAccountCode && r.Lines[0].Debit.Equal(total) &&
			r.Lines[1].AccountCode == suite.client.ServiceRevenueAccountCode && r.Lines[1].Credit.Equal(total)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	_, err := suite.service.RecognizeInvoiceRevenue(ctx, dto.RecognizeInvoiceRevenueRequest{InvoiceID: 21, EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestSettleInvoicePayment_Overpayment() {
	ctx := context.Background()
	invoice := &domain.Invoice{InvoiceID: 21, CustomerID: 7, Total: decimal.NewFromInt(300), CurrencyCode: "OMR", Status: domain.InvoicePartial}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(21)).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("SumPaymentsByInvoice", ctx, int64(21)).Return(decimal.NewFromInt(200), nil).Once()

	_, err := suite.service.SettleInvoicePayment(ctx, dto.SettleInvoicePaymentRequest{InvoiceID: 21, Amount: decimal.NewFromInt(150), Method: "cash", EntryDate: suite.entryDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOverpayment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TreasuryServiceTestSuite) TestSettleInvoicePayment_AlreadyPaid() {
	ctx := context.Background()
	invoice := &domain.Invoice{InvoiceID: 21, CustomerID: 7, Total: decimal.NewFromInt(300), CurrencyCode: "OMR", Status: domain.InvoicePaid}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(21)).Return(invoice, nil).Once()

	_, err := suite.service.SettleInvoicePayment(ctx, dto.SettleInvoicePaymentRequest{InvoiceID: 21, Amount: decimal.NewFromInt(100), Method: "cash", EntryDate: suite.entryDate}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvoiceAlreadyPaid)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TreasuryServiceTestSuite) TestSettleInvoicePayment_FullPaymentClearsReceivable() {
	ctx := context.Background()
	total := decimal.NewFromInt(300)
	recognizedAt := suite.entryDate.AddDate(0, -1, 0)
	invoice := &domain.Invoice{InvoiceID: 21, CustomerID: 7, Total: total, CurrencyCode: "OMR", Status: domain.InvoicePartial, RevenueRecognizedAt: &recognizedAt}
	amount := decimal.NewFromInt(100)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(21)).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("SumPaymentsByInvoice", ctx, int64(21)).Return(decimal.NewFromInt(200), nil).Once()
	suite.mockConverter.On("ConvertToBase", ctx, amount, "OMR", suite.entryDate).Return(amount, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockInvoiceRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.InvoiceID == 21 && p.Amount.Equal(amount)
	})).Return(int64(51), nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatusInTx", ctx, mock.Anything, int64(21), domain.InvoicePaid, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.Lines[0].AccountCode == domain.CodeBank && r.Lines[0].Debit.Equal(amount) &&
			r.Lines[1].AccountCode == suite.client.ReceivableAccountCode && r.Lines[1].Credit.Equal(amount)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	resp, err := suite.service.SettleInvoicePayment(ctx, dto.SettleInvoicePaymentRequest{InvoiceID: 21, Amount: amount, Method: "cash", EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(51), *resp.PaymentID)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *TreasuryServiceTestSuite) TestSettleInvoicePayment_UnrecognizedBooksRevenueDirectly() {
	ctx := context.Background()
	total := decimal.NewFromInt(300)
	invoice := &domain.Invoice{InvoiceID: 21, CustomerID: 7, Total: total, CurrencyCode: "OMR", Status: domain.InvoiceUnpaid}
	amount := decimal.NewFromInt(120)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, int64(21)).Return(invoice, nil).Once()
	suite.mockInvoiceRepo.On("SumPaymentsByInvoice", ctx, int64(21)).Return(decimal.Zero, nil).Once()
	suite.mockConverter.On("ConvertToBase", ctx, amount, "OMR", suite.entryDate).Return(amount, nil).Once()
	suite.expectTx()
	suite.mockSubledgerSvc.On("EnsureClientSubledgerInTx", ctx, mock.Anything, mock.Anything, suite.userID).Return(suite.client, nil).Once()
	suite.mockInvoiceRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Payment")).Return(int64(52), nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatusInTx", ctx, mock.Anything, int64(21), domain.InvoicePartial, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalSvc.On("PostEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
		return r.Lines[1].AccountCode == suite.client.ServiceRevenueAccountCode && r.Lines[1].Credit.Equal(amount)
	}), suite.userID).Return(suite.postedEntry(), nil).Once()

	_, err := suite.service.SettleInvoicePayment(ctx, dto.SettleInvoicePaymentRequest{InvoiceID: 21, Amount: amount, Method: "cash", EntryDate: suite.entryDate}, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTreasuryService(t *testing.T) {
	suite.Run(t, new(TreasuryServiceTestSuite))
}

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, quoteCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock CurrencyReaderSvc ---
type MockCurrencyReaderSvc struct {
	mock.Mock
}

var _ portssvc.CurrencyReaderSvc = (*MockCurrencyReaderSvc)(nil)

func (m *MockCurrencyReaderSvc) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReaderSvc) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite Setup ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencySvc  *MockCurrencyReaderSvc
	mockSettingsRepo *MockSettingsRepository
	service          portssvc.ExchangeRateSvcFacade
	asOf             time.Time
	userID           string
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyReaderSvc)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.service = services.NewExchangeRateService(
		suite.mockRateRepo,
		suite.mockCurrencySvc,
		"OMR",
		services.WithSettingsReader(suite.mockSettingsRepo),
		services.WithDefaultRate(decimal.RequireFromString("0.385")),
	)
	suite.asOf = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	suite.userID = "bookkeeper"
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		BaseCurrency:  "usd",
		QuoteCurrency: "omr",
		Rate:          decimal.RequireFromString("0.3845"),
		EffectiveAt:   suite.asOf,
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "OMR").Return(&domain.Currency{CurrencyCode: "OMR"}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("USD", rate.BaseCurrency)
	suite.Equal("OMR", rate.QuoteCurrency)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{BaseCurrency: "USD", QuoteCurrency: "OMR", Rate: decimal.Zero}

	_, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SamePair() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{BaseCurrency: "USD", QuoteCurrency: "usd", Rate: decimal.NewFromInt(1)}

	_, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{BaseCurrency: "XXX", QuoteCurrency: "OMR", Rate: decimal.NewFromInt(2)}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateExchangeRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRate_IdentityPair() {
	ctx := context.Background()

	rate, err := suite.service.Rate(ctx, "omr", suite.asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRate_StoredRateWins() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{BaseCurrency: "USD", QuoteCurrency: "OMR", Rate: decimal.RequireFromString("0.3845")}

	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "OMR").Return(stored, nil).Once()

	rate, err := suite.service.Rate(ctx, "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(stored.Rate))
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "GetSettings", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRate_FallsBackToSettingsDefault() {
	ctx := context.Background()
	settings := &domain.Settings{DefaultExchangeRate: decimal.RequireFromString("0.384")}

	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "OMR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(settings, nil).Once()

	rate, err := suite.service.Rate(ctx, "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(settings.DefaultExchangeRate))
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRate_FallsBackToConfiguredDefault() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "OMR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(&domain.Settings{}, nil).Once()

	rate, err := suite.service.Rate(ctx, "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("0.385")))
}

func (suite *ExchangeRateServiceTestSuite) TestRate_NoRateAvailable() {
	ctx := context.Background()
	bare := services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencySvc, "OMR")

	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "OMR").Return(nil, apperrors.ErrNotFound).Once()

	_, err := bare.Rate(ctx, "USD", suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoConversionRate)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_RoundsToBasePrecision() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{BaseCurrency: "USD", QuoteCurrency: "OMR", Rate: decimal.RequireFromString("0.3845")}

	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "OMR").Return(stored, nil).Once()

	// 1234.56 * 0.3845 = 474.68832, rounded to OMR's 3 decimal places.
	converted, err := suite.service.ConvertToBase(ctx, decimal.RequireFromString("1234.56"), "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.True(converted.Equal(decimal.RequireFromString("474.688")), "got %s", converted)
}

func (suite *ExchangeRateServiceTestSuite) TestGetLatestRate_BadCode() {
	ctx := context.Background()

	_, err := suite.service.GetLatestRate(ctx, "US", "OMR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

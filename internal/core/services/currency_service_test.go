package services_test

import (
	"context"
	"testing"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/core/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
	userID   string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
	suite.userID = "bookkeeper"
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "aed", Symbol: "د.إ", Name: "UAE Dirham"}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "AED" && c.CreatedBy == suite.userID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("AED", currency.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_BadCode() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "DIRHAM", Symbol: "د.إ", Name: "UAE Dirham"}

	currency, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(currency)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}

	suite.mockRepo.On("SaveCurrency", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(currency)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_Normalizes() {
	ctx := context.Background()
	usd := domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(&usd, nil).Once()

	got, err := suite.service.GetCurrencyByCode(ctx, " usd ")

	suite.Require().NoError(err)
	suite.Equal("USD", got.CurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_BadLength() {
	ctx := context.Background()

	got, err := suite.service.GetCurrencyByCode(ctx, "US")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCurrencyByCode", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies() {
	ctx := context.Background()
	currencies := []domain.Currency{
		{CurrencyCode: "OMR", Symbol: "ر.ع.", Name: "Omani Rial"},
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"},
	}

	suite.mockRepo.On("ListCurrencies", ctx).Return(currencies, nil).Once()

	got, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/core/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingsRepository
	service  portssvc.SettingsSvcFacade
	userID   string
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.service = services.NewSettingsService(suite.mockRepo)
	suite.userID = "accountant"
}

// --- Test Cases ---

func (suite *SettingsServiceTestSuite) TestGetSettings_Success() {
	ctx := context.Background()
	stored := &domain.Settings{
		DefaultExchangeRate: decimal.RequireFromString("0.385"),
		AccountingMethod:    "accrual",
	}

	suite.mockRepo.On("GetSettings", ctx).Return(stored, nil).Once()

	settings, err := suite.service.GetSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal("accrual", settings.AccountingMethod)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestGetSettings_RepositoryError() {
	ctx := context.Background()

	suite.mockRepo.On("GetSettings", ctx).Return(nil, assert.AnError).Once()

	settings, err := suite.service.GetSettings(ctx)

	suite.Require().Error(err)
	suite.Nil(settings)
}

func (suite *SettingsServiceTestSuite) TestUpdateBooksLockDate_SetsCutoff() {
	ctx := context.Background()
	lockDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	stored := &domain.Settings{AccountingMethod: "accrual"}

	suite.mockRepo.On("GetSettings", ctx).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSettings", ctx, mock.MatchedBy(func(s domain.Settings) bool {
		return s.BooksLockedUntil != nil && s.BooksLockedUntil.Equal(lockDate) && s.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	settings, err := suite.service.UpdateBooksLockDate(ctx, dto.UpdateBooksLockRequest{BooksLockedUntil: &lockDate}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settings.BooksLockedUntil)
	suite.True(settings.BooksLockedUntil.Equal(lockDate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateBooksLockDate_ClearsCutoff() {
	ctx := context.Background()
	previous := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	stored := &domain.Settings{BooksLockedUntil: &previous, AccountingMethod: "accrual"}

	suite.mockRepo.On("GetSettings", ctx).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSettings", ctx, mock.MatchedBy(func(s domain.Settings) bool {
		return s.BooksLockedUntil == nil
	})).Return(nil).Once()

	settings, err := suite.service.UpdateBooksLockDate(ctx, dto.UpdateBooksLockRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(settings.BooksLockedUntil)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateBooksLockDate_UpdateFails() {
	ctx := context.Background()
	stored := &domain.Settings{AccountingMethod: "accrual"}

	suite.mockRepo.On("GetSettings", ctx).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateSettings", ctx, mock.Anything).Return(assert.AnError).Once()

	settings, err := suite.service.UpdateBooksLockDate(ctx, dto.UpdateBooksLockRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(settings)
}

// --- Run Test Suite ---
func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

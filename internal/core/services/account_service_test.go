package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/core/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade

	tenantID string
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Number: "411000", Label: "Clients"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Number == "411000" && a.IsActive && a.TenantID == suite.tenantID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.True(account.IsActive)
	suite.Equal(4, account.Class())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_BadNumbers() {
	ctx := context.Background()

	for _, number := range []string{"9000", "041000", "4110", "123456789", "41A000", ""} {
		req := dto.CreateAccountRequest{Number: number, Label: "Compte"}
		account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)
		suite.Require().Error(err, "number %q should be rejected", number)
		suite.Nil(account)
		suite.ErrorIs(err, services.ErrAccountNumberInvalid)
	}
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Duplicate() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Number: "411000", Label: "Clients"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestGetActiveAccountByNumber_InactiveRejected() {
	ctx := context.Background()
	inactive := &domain.Account{
		AccountID: uuid.NewString(),
		Number:    "601000",
		IsActive:  false,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, suite.tenantID, "601000").Return(inactive, nil).Once()

	account, err := suite.service.GetActiveAccountByNumber(ctx, suite.tenantID, "601000")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *AccountServiceTestSuite) TestGetActiveAccountsByNumbers_MissingRejected() {
	ctx := context.Background()
	numbers := []string{"411000", "443000"}
	found := map[string]domain.Account{
		"411000": {Number: "411000", IsActive: true},
	}

	suite.mockAccountRepo.On("FindAccountsByNumbers", ctx, suite.tenantID, numbers).Return(found, nil).Once()

	accounts, err := suite.service.GetActiveAccountsByNumbers(ctx, suite.tenantID, numbers)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorContains(err, "443000")
}

func (suite *AccountServiceTestSuite) TestGetActiveAccountsByNumbers_InactiveRejected() {
	ctx := context.Background()
	numbers := []string{"411000", "443000"}
	found := map[string]domain.Account{
		"411000": {Number: "411000", IsActive: true},
		"443000": {Number: "443000", IsActive: false},
	}

	suite.mockAccountRepo.On("FindAccountsByNumbers", ctx, suite.tenantID, numbers).Return(found, nil).Once()

	accounts, err := suite.service.GetActiveAccountsByNumbers(ctx, suite.tenantID, numbers)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.ErrorIs(err, services.ErrAccountInactive)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsIsNoop() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID: uuid.NewString(),
		Number:    "411000",
		Label:     "Clients",
		IsActive:  true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, existing.AccountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.tenantID, existing.AccountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Clients", account.Label)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.tenantID, accountID, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

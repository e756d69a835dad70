package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/core/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockEntryRepo   *MockEntryRepository
	service         portssvc.JournalSvcFacade

	tenantID string
	userID   string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockEntryRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Code: "VE", Label: "Ventes", Type: domain.JournalSale}

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Code == "VE" && j.IsActive && j.TenantID == suite.tenantID
	})).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.True(journal.IsActive)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_BadCodes() {
	ctx := context.Background()

	for _, code := range []string{"", "ve", "VENTES", "V3", "A B"} {
		req := dto.CreateJournalRequest{Code: code, Label: "Journal", Type: domain.JournalMisc}
		journal, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)
		suite.Require().Error(err, "code %q should be rejected", code)
		suite.Nil(journal)
		suite.ErrorIs(err, services.ErrJournalCodeInvalid)
	}
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_BadType() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Code: "VE", Label: "Ventes", Type: domain.JournalType("BANQUE")}

	journal, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalTypeInvalid)
}

func (suite *JournalServiceTestSuite) TestGetActiveJournal_InactiveRejected() {
	ctx := context.Background()
	inactive := &domain.Journal{
		JournalID: uuid.NewString(),
		Code:      "OD",
		Type:      domain.JournalMisc,
		IsActive:  false,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, inactive.JournalID).Return(inactive, nil).Once()

	journal, err := suite.service.GetActiveJournal(ctx, suite.tenantID, inactive.JournalID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalInactive)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_ReferencedRejected() {
	ctx := context.Background()
	existing := &domain.Journal{JournalID: uuid.NewString(), Code: "VE", IsActive: true}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, existing.JournalID).Return(existing, nil).Once()
	suite.mockEntryRepo.On("CountEntriesByJournal", ctx, suite.tenantID, existing.JournalID).Return(int64(7), nil).Once()

	err := suite.service.DeleteJournal(ctx, suite.tenantID, existing.JournalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrJournalReferenced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_Deactivate() {
	ctx := context.Background()
	existing := &domain.Journal{JournalID: uuid.NewString(), Code: "VE", Type: domain.JournalSale, IsActive: true}
	inactive := false

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, existing.JournalID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("UpdateJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return !j.IsActive
	})).Return(nil).Once()

	journal, err := suite.service.UpdateJournal(ctx, suite.tenantID, existing.JournalID, dto.UpdateJournalRequest{
		IsActive: &inactive,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.False(journal.IsActive)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

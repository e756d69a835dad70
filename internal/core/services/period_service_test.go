package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/core/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockEntryRepo  *MockEntryRepository
	mockAuditSvc   *MockAuditSvc
	service        portssvc.PeriodSvcFacade

	tenantID string
	userID   string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAuditSvc = new(MockAuditSvc)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockEntryRepo, suite.mockAuditSvc)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Code:      "2025-01",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("ListOverlapping", ctx, suite.tenantID, req.StartDate, req.EndDate, "").
		Return([]domain.FiscalPeriod{}, nil).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.MatchedBy(func(p domain.FiscalPeriod) bool {
		return p.Code == "2025-01" && !p.IsClosed && p.TenantID == suite.tenantID
	})).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.False(period.IsClosed)
	suite.Equal(suite.userID, period.CreatedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_OverlapRejected() {
	ctx := context.Background()
	// January is taken; a range starting mid-January must be refused.
	req := dto.CreatePeriodRequest{
		Code:      "2025-02",
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
	}
	existing := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Code:      "2025-01",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("ListOverlapping", ctx, suite.tenantID, req.StartDate, req.EndDate, "").
		Return([]domain.FiscalPeriod{existing}, nil).Once()

	period, err := suite.service.CreatePeriod(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodOverlap)
	suite.ErrorContains(err, "2025-01")
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_BadCode() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Code:      "JAN25",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	period, err := suite.service.CreatePeriod(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodCodeInvalid)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		Code:      "2025-01",
		StartDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	period, err := suite.service.CreatePeriod(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodRangeInvalid)
}

func (suite *PeriodServiceTestSuite) TestGetOpenPeriodByID_ClosedRejected() {
	ctx := context.Background()
	closed := &domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Code:     "2024-12",
		IsClosed: true,
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, closed.PeriodID).Return(closed, nil).Once()

	period, err := suite.service.GetOpenPeriodByID(ctx, suite.tenantID, closed.PeriodID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodClosed)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	now := time.Now().UTC()
	closed := &domain.FiscalPeriod{
		PeriodID: periodID,
		Code:     "2025-01",
		IsClosed: true,
		ClosedAt: &now,
	}

	suite.mockPeriodRepo.On("ClosePeriod", ctx, suite.tenantID, periodID, suite.userID, mock.Anything).Return(true, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, periodID).Return(closed, nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.MatchedBy(func(r domain.AuditRecord) bool {
		return r.Action == domain.AuditClose && r.Actor == suite.userID
	})).Once()

	period, err := suite.service.ClosePeriod(ctx, suite.tenantID, periodID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.True(period.IsClosed)
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("ClosePeriod", ctx, suite.tenantID, periodID, suite.userID, mock.Anything).Return(false, nil).Once()

	period, err := suite.service.ClosePeriod(ctx, suite.tenantID, periodID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestUpdatePeriod_ClosedRejected() {
	ctx := context.Background()
	closed := &domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Code:     "2024-12",
		IsClosed: true,
	}
	newCode := "2025-03"

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, closed.PeriodID).Return(closed, nil).Once()

	period, err := suite.service.UpdatePeriod(ctx, suite.tenantID, closed.PeriodID, dto.UpdatePeriodRequest{Code: &newCode}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_ReferencedRejected() {
	ctx := context.Background()
	open := &domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Code:     "2025-01",
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, open.PeriodID).Return(open, nil).Once()
	suite.mockEntryRepo.On("CountEntriesByPeriod", ctx, suite.tenantID, open.PeriodID).Return(int64(3), nil).Once()

	err := suite.service.DeletePeriod(ctx, suite.tenantID, open.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPeriodReferenced)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "DeletePeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestDeletePeriod_Success() {
	ctx := context.Background()
	open := &domain.FiscalPeriod{
		PeriodID: uuid.NewString(),
		Code:     "2025-01",
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, open.PeriodID).Return(open, nil).Once()
	suite.mockEntryRepo.On("CountEntriesByPeriod", ctx, suite.tenantID, open.PeriodID).Return(int64(0), nil).Once()
	suite.mockPeriodRepo.On("DeletePeriod", ctx, suite.tenantID, open.PeriodID).Return(nil).Once()

	err := suite.service.DeletePeriod(ctx, suite.tenantID, open.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

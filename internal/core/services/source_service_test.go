package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/core/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

type SourceServiceTestSuite struct {
	suite.Suite
	mockSourceRepo *MockSourceRepository
	service        portssvc.SourceSvcFacade

	tenantID string
	userID   string
}

func (suite *SourceServiceTestSuite) SetupTest() {
	suite.mockSourceRepo = new(MockSourceRepository)
	suite.service = services.NewSourceService(suite.mockSourceRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *SourceServiceTestSuite) TestRegisterSource_Invoice() {
	ctx := context.Background()
	req := dto.CreateSourceRequest{
		Type:    domain.SourceInvoice,
		Label:   "Facture F-0042",
		Amount:  decimal.RequireFromString("1180"),
		VATRate: decimal.RequireFromString("0.18"),
		DocDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockSourceRepo.On("SaveSourceDocument", ctx, mock.MatchedBy(func(d domain.SourceDocument) bool {
		return d.Type == domain.SourceInvoice && d.TenantID == suite.tenantID
	})).Return(nil).Once()

	doc, err := suite.service.RegisterSource(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.NotEmpty(doc.DocID)
	suite.mockSourceRepo.AssertExpectations(suite.T())
}

func (suite *SourceServiceTestSuite) TestRegisterSource_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateSourceRequest{
		Type:    domain.SourceTransaction,
		Label:   "Virement",
		Amount:  decimal.Zero,
		DocDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	doc, err := suite.service.RegisterSource(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrSourceAmountNotPositive)
	suite.mockSourceRepo.AssertNotCalled(suite.T(), "SaveSourceDocument", mock.Anything, mock.Anything)
}

func (suite *SourceServiceTestSuite) TestRegisterSource_NetExceedsGross() {
	ctx := context.Background()
	req := dto.CreateSourceRequest{
		Type:      domain.SourceInvoice,
		Label:     "Facture",
		Amount:    decimal.RequireFromString("1000"),
		NetAmount: decimal.RequireFromString("1200"),
		DocDate:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	doc, err := suite.service.RegisterSource(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrSourceNetExceedsGross)
}

func (suite *SourceServiceTestSuite) TestRegisterSource_BadVATRate() {
	ctx := context.Background()
	req := dto.CreateSourceRequest{
		Type:    domain.SourceInvoice,
		Label:   "Facture",
		Amount:  decimal.RequireFromString("1000"),
		VATRate: decimal.RequireFromString("18"), // Rate is a fraction, not a percentage
		DocDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	doc, err := suite.service.RegisterSource(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrSourceVATRateInvalid)
}

func (suite *SourceServiceTestSuite) TestRegisterSource_StockWithoutDirection() {
	ctx := context.Background()
	req := dto.CreateSourceRequest{
		Type:    domain.SourceStock,
		Label:   "Mouvement stock",
		Amount:  decimal.RequireFromString("500"),
		DocDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	doc, err := suite.service.RegisterSource(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrStockDirectionMissing)
}

func TestSourceService(t *testing.T) {
	suite.Run(t, new(SourceServiceTestSuite))
}

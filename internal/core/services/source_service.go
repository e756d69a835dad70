package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

var (
	ErrSourceAmountNotPositive = errors.New("source document amount must be positive")
	ErrSourceNetExceedsGross   = errors.New("source document net amount exceeds the gross amount")
	ErrSourceVATRateInvalid    = errors.New("source document VAT rate must be between 0 and 1")
	ErrStockDirectionMissing   = errors.New("stock source documents require a direction")
)

// sourceService registers the source documents consumed by entry generation.
type sourceService struct {
	sourceRepo portsrepo.SourceRepositoryFacade
}

// NewSourceService creates a new SourceService.
func NewSourceService(sourceRepo portsrepo.SourceRepositoryFacade) portssvc.SourceSvcFacade {
	return &sourceService{sourceRepo: sourceRepo}
}

var _ portssvc.SourceSvcFacade = (*sourceService)(nil)

// RegisterSource persists a new source document after type-specific checks.
func (s *sourceService) RegisterSource(ctx context.Context, tenantID string, req dto.CreateSourceRequest, userID string) (*domain.SourceDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrSourceAmountNotPositive, req.Amount)
	}

	switch req.Type {
	case domain.SourceInvoice:
		if req.NetAmount.GreaterThan(req.Amount) {
			return nil, fmt.Errorf("%w: %s > %s", ErrSourceNetExceedsGross, req.NetAmount, req.Amount)
		}
		if req.VATRate.IsNegative() || req.VATRate.GreaterThan(decimal.New(1, 0)) {
			return nil, fmt.Errorf("%w: got %s", ErrSourceVATRateInvalid, req.VATRate)
		}
	case domain.SourceStock:
		if req.Direction != domain.StockIn && req.Direction != domain.StockOut {
			return nil, ErrStockDirectionMissing
		}
	}

	now := time.Now().UTC()
	doc := domain.SourceDocument{
		DocID:       uuid.NewString(),
		TenantID:    tenantID,
		Type:        req.Type,
		Label:       req.Label,
		Reference:   req.Reference,
		Amount:      req.Amount,
		NetAmount:   req.NetAmount,
		VATRate:     req.VATRate,
		Direction:   req.Direction,
		DocDate:     req.DocDate,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.sourceRepo.SaveSourceDocument(ctx, doc); err != nil {
		logger.Error("Failed to save source document", slog.String("error", err.Error()), slog.String("type", string(req.Type)))
		return nil, fmt.Errorf("failed to save source document: %w", err)
	}

	logger.Info("Source document registered", slog.String("doc_id", doc.DocID), slog.String("type", string(doc.Type)))
	return &doc, nil
}

// GetSourceByID retrieves a source document.
func (s *sourceService) GetSourceByID(ctx context.Context, tenantID, docID string) (*domain.SourceDocument, error) {
	doc, err := s.sourceRepo.FindSourceByID(ctx, tenantID, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to find source document %s: %w", docID, err)
	}
	return doc, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

// auditService appends to and queries the tenant audit trail.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends an audit record, stamping ID and date when absent.
// Best effort: a failed append is logged and never fails the caller.
func (s *auditService) Record(ctx context.Context, record domain.AuditRecord) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if record.RecordID == "" {
		record.RecordID = uuid.NewString()
	}
	if record.ActionDate.IsZero() {
		record.ActionDate = time.Now().UTC()
	}

	if err := s.auditRepo.SaveRecord(ctx, record); err != nil {
		logger.Error("Failed to save audit record",
			slog.String("error", err.Error()),
			slog.String("action", string(record.Action)),
			slog.String("actor", record.Actor),
		)
	}
}

// ListRecords queries the trail, newest first.
func (s *auditService) ListRecords(ctx context.Context, tenantID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := portsrepo.AuditFilter{
		Actor:   params.Actor,
		Action:  domain.AuditAction(params.Action),
		EntryID: params.EntryID,
		From:    params.From,
		To:      params.To,
	}

	records, nextToken, err := s.auditRepo.ListRecords(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}

	return &dto.ListAuditResponse{
		Records:   dto.ToAuditRecordResponses(records),
		NextToken: nextToken,
	}, nil
}

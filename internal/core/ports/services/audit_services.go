package services

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// AuditSvcFacade is the audit trail surface used by the engine and handlers.
type AuditSvcFacade interface {
	// Record appends an audit record. Best effort: failures are logged
	// and swallowed so they never fail the primary operation.
	Record(ctx context.Context, record domain.AuditRecord)

	// ListRecords queries the trail, newest first.
	ListRecords(ctx context.Context, tenantID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error)
}

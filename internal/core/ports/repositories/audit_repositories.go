package repositories

import (
	"context"
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// AuditFilter narrows audit trail queries. Zero values mean "no filter".
type AuditFilter struct {
	Actor   string
	Action  domain.AuditAction
	EntryID string
	From    *time.Time
	To      *time.Time
}

// AuditReader defines read operations over the audit trail.
type AuditReader interface {
	// ListRecords retrieves a filtered, token-paginated list of audit
	// records ordered by action date descending.
	ListRecords(ctx context.Context, tenantID string, filter AuditFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)
}

// AuditWriter defines the append-only write operation of the audit trail.
type AuditWriter interface {
	// SaveRecord appends one audit record. Records are never updated or
	// deleted.
	SaveRecord(ctx context.Context, record domain.AuditRecord) error
}

// AuditRepositoryFacade combines the audit trail repository interfaces.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}

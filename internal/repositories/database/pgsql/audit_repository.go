package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	"github.com/mkamgno/ohada_ledger/internal/utils/pagination"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `record_id, tenant_id, entry_id, action, actor, action_date, details, before_snapshot, after_snapshot, source_ip`

// SaveRecord appends one audit record. The table is append-only; there
// is no update or delete operation.
func (r *PgxAuditRepository) SaveRecord(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_records (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.RecordID,
		record.TenantID,
		record.EntryID,
		record.Action,
		record.Actor,
		record.ActionDate,
		record.Details,
		record.BeforeSnapshot,
		record.AfterSnapshot,
		record.SourceIP,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record "+record.RecordID, err)
	}
	return nil
}

// ListRecords retrieves a filtered page of audit records, newest first.
// The pagination token carries the action date of the last row.
func (r *PgxAuditRepository) ListRecords(ctx context.Context, tenantID string, filter portsrepo.AuditFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_records
		WHERE tenant_id = $1
	`
	args := []any{tenantID}

	if filter.Actor != "" {
		args = append(args, filter.Actor)
		query += fmt.Sprintf(` AND actor = $%d`, len(args))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(` AND action = $%d`, len(args))
	}
	if filter.EntryID != "" {
		args = append(args, filter.EntryID)
		query += fmt.Sprintf(` AND entry_id = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND action_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND action_date <= $%d`, len(args))
	}

	if nextToken != nil && *nextToken != "" {
		tokenDate, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, tokenDate)
		query += fmt.Sprintf(` AND action_date < $%d`, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY action_date DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit records", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditRecord, error) {
		var rec domain.AuditRecord
		err := row.Scan(
			&rec.RecordID,
			&rec.TenantID,
			&rec.EntryID,
			&rec.Action,
			&rec.Actor,
			&rec.ActionDate,
			&rec.Details,
			&rec.BeforeSnapshot,
			&rec.AfterSnapshot,
			&rec.SourceIP,
		)
		return rec, err
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan audit records", err)
	}

	var newToken *string
	if len(records) > limit {
		records = records[:limit]
		token := pagination.EncodeDateBasedToken(records[len(records)-1].ActionDate)
		newToken = &token
	}
	return records, newToken, nil
}

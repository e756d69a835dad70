package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
)

type PgxSourceRepository struct {
	BaseRepository
}

// newPgxSourceRepository creates a new repository for source document data.
func newPgxSourceRepository(pool *pgxpool.Pool) portsrepo.SourceRepositoryFacade {
	return &PgxSourceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SourceRepositoryFacade = (*PgxSourceRepository)(nil)

const sourceColumns = `doc_id, tenant_id, type, label, reference, amount, net_amount, vat_rate, direction, doc_date, created_at, created_by, last_updated_at, last_updated_by`

// SaveSourceDocument inserts a new source document.
func (r *PgxSourceRepository) SaveSourceDocument(ctx context.Context, doc domain.SourceDocument) error {
	query := `
		INSERT INTO source_documents (` + sourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var direction *string
	if doc.Direction != "" {
		d := string(doc.Direction)
		direction = &d
	}

	_, err := r.Pool.Exec(ctx, query,
		doc.DocID,
		doc.TenantID,
		doc.Type,
		doc.Label,
		doc.Reference,
		doc.Amount,
		doc.NetAmount,
		doc.VATRate,
		direction,
		doc.DocDate,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert source document "+doc.DocID, err)
	}
	return nil
}

// FindSourceByID retrieves a source document by its ID.
func (r *PgxSourceRepository) FindSourceByID(ctx context.Context, tenantID, docID string) (*domain.SourceDocument, error) {
	query := `
		SELECT ` + sourceColumns + `
		FROM source_documents
		WHERE tenant_id = $1 AND doc_id = $2;
	`
	var doc domain.SourceDocument
	var direction *string
	err := r.Pool.QueryRow(ctx, query, tenantID, docID).Scan(
		&doc.DocID,
		&doc.TenantID,
		&doc.Type,
		&doc.Label,
		&doc.Reference,
		&doc.Amount,
		&doc.NetAmount,
		&doc.VATRate,
		&direction,
		&doc.DocDate,
		&doc.CreatedAt,
		&doc.CreatedBy,
		&doc.LastUpdatedAt,
		&doc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find source document "+docID, err)
	}
	if direction != nil {
		doc.Direction = domain.StockDirection(*direction)
	}
	return &doc, nil
}

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

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for operation template data.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

const templateColumns = `template_id, tenant_id, operation_type, payment_mode, principal_account, is_static_account, principal_sense, journal_id, amount_basis, client_ceiling, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTemplate(row pgx.Row) (domain.OperationTemplate, error) {
	var t domain.OperationTemplate
	err := row.Scan(
		&t.TemplateID,
		&t.TenantID,
		&t.OperationType,
		&t.PaymentMode,
		&t.PrincipalAccount,
		&t.IsStaticAccount,
		&t.PrincipalSense,
		&t.JournalID,
		&t.AmountBasis,
		&t.ClientCeiling,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTemplate inserts a new template. The (tenant, operation type,
// payment mode) triple is unique.
func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.OperationTemplate) error {
	query := `
		INSERT INTO operation_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		template.TemplateID,
		template.TenantID,
		template.OperationType,
		template.PaymentMode,
		template.PrincipalAccount,
		template.IsStaticAccount,
		template.PrincipalSense,
		template.JournalID,
		template.AmountBasis,
		template.ClientCeiling,
		template.IsActive,
		template.CreatedAt,
		template.CreatedBy,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert template", err)
	}
	return nil
}

// FindTemplateByID retrieves a template by its ID.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, tenantID, templateID string) (*domain.OperationTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM operation_templates
		WHERE tenant_id = $1 AND template_id = $2;
	`
	template, err := scanTemplate(r.Pool.QueryRow(ctx, query, tenantID, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find template by ID "+templateID, err)
	}
	return &template, nil
}

// FindTemplateByTypeAndMode retrieves the template for an (operation
// type, payment mode) pair.
func (r *PgxTemplateRepository) FindTemplateByTypeAndMode(ctx context.Context, tenantID, operationType, paymentMode string) (*domain.OperationTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM operation_templates
		WHERE tenant_id = $1 AND operation_type = $2 AND payment_mode = $3;
	`
	template, err := scanTemplate(r.Pool.QueryRow(ctx, query, tenantID, operationType, paymentMode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find template for ("+operationType+", "+paymentMode+")", err)
	}
	return &template, nil
}

// FindTemplatesByPrincipalAccount retrieves the templates posting to an account.
func (r *PgxTemplateRepository) FindTemplatesByPrincipalAccount(ctx context.Context, tenantID, accountNumber string) ([]domain.OperationTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM operation_templates
		WHERE tenant_id = $1 AND principal_account = $2
		ORDER BY operation_type, payment_mode;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query templates by account", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// ListTemplates retrieves a paginated list of templates for a tenant.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, tenantID string, limit, offset int) ([]domain.OperationTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM operation_templates
		WHERE tenant_id = $1
		ORDER BY operation_type, payment_mode
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query templates", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

func collectTemplates(rows pgx.Rows) ([]domain.OperationTemplate, error) {
	templates := []domain.OperationTemplate{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read template rows", err)
	}
	return templates, nil
}

// UpdateTemplate updates the mutable fields of a template.
func (r *PgxTemplateRepository) UpdateTemplate(ctx context.Context, template domain.OperationTemplate) error {
	query := `
		UPDATE operation_templates
		SET principal_account = $3, is_static_account = $4, principal_sense = $5,
		    journal_id = $6, amount_basis = $7, client_ceiling = $8, is_active = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE tenant_id = $1 AND template_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		template.TenantID,
		template.TemplateID,
		template.PrincipalAccount,
		template.IsStaticAccount,
		template.PrincipalSense,
		template.JournalID,
		template.AmountBasis,
		template.ClientCeiling,
		template.IsActive,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update template "+template.TemplateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTemplate removes a template row.
func (r *PgxTemplateRepository) DeleteTemplate(ctx context.Context, tenantID, templateID string) error {
	query := `DELETE FROM operation_templates WHERE tenant_id = $1 AND template_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, templateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete template "+templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

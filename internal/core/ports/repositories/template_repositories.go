package repositories

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// TemplateReader defines read operations for operation template data.
type TemplateReader interface {
	// FindTemplateByID retrieves a specific template by its unique identifier.
	FindTemplateByID(ctx context.Context, tenantID, templateID string) (*domain.OperationTemplate, error)

	// FindTemplateByTypeAndMode retrieves the template for an (operation type,
	// payment mode) pair, which is unique per tenant.
	FindTemplateByTypeAndMode(ctx context.Context, tenantID, operationType, paymentMode string) (*domain.OperationTemplate, error)

	// FindTemplatesByPrincipalAccount retrieves templates posting to an account.
	FindTemplatesByPrincipalAccount(ctx context.Context, tenantID, accountNumber string) ([]domain.OperationTemplate, error)

	// ListTemplates retrieves a paginated list of templates for a tenant.
	ListTemplates(ctx context.Context, tenantID string, limit, offset int) ([]domain.OperationTemplate, error)
}

// TemplateWriter defines write operations for operation template data.
type TemplateWriter interface {
	// SaveTemplate persists a new template.
	SaveTemplate(ctx context.Context, template domain.OperationTemplate) error

	// UpdateTemplate updates an existing template.
	UpdateTemplate(ctx context.Context, template domain.OperationTemplate) error

	// DeleteTemplate removes a template.
	DeleteTemplate(ctx context.Context, tenantID, templateID string) error
}

// TemplateRepositoryFacade combines all template repository interfaces.
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}

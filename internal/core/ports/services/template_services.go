package services

import (
	"context"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// TemplateReaderSvc defines read operations for operation template data.
type TemplateReaderSvc interface {
	// GetTemplateByID retrieves a specific template by its ID.
	GetTemplateByID(ctx context.Context, tenantID, templateID string) (*domain.OperationTemplate, error)

	// FindTemplateByTypeAndMode retrieves the template driving generation
	// for an (operation type, payment mode) pair.
	FindTemplateByTypeAndMode(ctx context.Context, tenantID, operationType, paymentMode string) (*domain.OperationTemplate, error)

	// ListTemplates retrieves templates, optionally filtered by principal account.
	ListTemplates(ctx context.Context, tenantID string, params dto.ListTemplatesParams) ([]domain.OperationTemplate, error)
}

// TemplateWriterSvc defines write operations for operation template data.
type TemplateWriterSvc interface {
	// CreateTemplate persists a new template after resolving its account
	// and journal references.
	CreateTemplate(ctx context.Context, tenantID string, req dto.CreateTemplateRequest, userID string) (*domain.OperationTemplate, error)

	// UpdateTemplate updates a template, re-validating references.
	UpdateTemplate(ctx context.Context, tenantID, templateID string, req dto.UpdateTemplateRequest, userID string) (*domain.OperationTemplate, error)

	// DeleteTemplate removes a template.
	DeleteTemplate(ctx context.Context, tenantID, templateID, userID string) error
}

// TemplateSvcFacade combines all template service interfaces.
type TemplateSvcFacade interface {
	TemplateReaderSvc
	TemplateWriterSvc
}

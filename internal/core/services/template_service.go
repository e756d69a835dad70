package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

var (
	ErrTemplateInactive      = errors.New("operation template is inactive")
	ErrTemplatePairExists    = errors.New("a template already exists for this operation type and payment mode")
	ErrCeilingNotPositive    = errors.New("client ceiling must be positive when set")
	ErrTemplateAccountNumber = errors.New("template principal account must be a valid account number")
)

// templateService manages the operation templates that drive automatic
// entry generation.
type templateService struct {
	templateRepo portsrepo.TemplateRepositoryFacade
	accountSvc   portssvc.AccountReaderSvc
	journalSvc   portssvc.JournalReaderSvc
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade, accountSvc portssvc.AccountReaderSvc, journalSvc portssvc.JournalReaderSvc) portssvc.TemplateSvcFacade {
	return &templateService{
		templateRepo: templateRepo,
		accountSvc:   accountSvc,
		journalSvc:   journalSvc,
	}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// validateReferences gates the template's account and journal references.
func (s *templateService) validateReferences(ctx context.Context, tenantID, principalAccount, journalID string) error {
	if !domain.ValidAccountNumber(principalAccount) {
		return fmt.Errorf("%w: %q", ErrTemplateAccountNumber, principalAccount)
	}
	if _, err := s.accountSvc.GetActiveAccountByNumber(ctx, tenantID, principalAccount); err != nil {
		return fmt.Errorf("principal account check failed: %w", err)
	}
	if _, err := s.journalSvc.GetActiveJournal(ctx, tenantID, journalID); err != nil {
		return fmt.Errorf("journal check failed: %w", err)
	}
	return nil
}

// CreateTemplate persists a new template. The (operation type, payment
// mode) pair is unique per tenant.
func (s *templateService) CreateTemplate(ctx context.Context, tenantID string, req dto.CreateTemplateRequest, userID string) (*domain.OperationTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateReferences(ctx, tenantID, req.PrincipalAccount, req.JournalID); err != nil {
		return nil, err
	}
	if req.ClientCeiling != nil && !req.ClientCeiling.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrCeilingNotPositive, req.ClientCeiling)
	}

	existing, err := s.templateRepo.FindTemplateByTypeAndMode(ctx, tenantID, req.OperationType, req.PaymentMode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check template uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: (%s, %s)", ErrTemplatePairExists, req.OperationType, req.PaymentMode)
	}

	now := time.Now().UTC()
	template := domain.OperationTemplate{
		TemplateID:       uuid.NewString(),
		TenantID:         tenantID,
		OperationType:    req.OperationType,
		PaymentMode:      req.PaymentMode,
		PrincipalAccount: req.PrincipalAccount,
		IsStaticAccount:  req.IsStaticAccount,
		PrincipalSense:   req.PrincipalSense,
		JournalID:        req.JournalID,
		AmountBasis:      req.AmountBasis,
		ClientCeiling:    req.ClientCeiling,
		IsActive:         true,
		AuditFields:      domain.NewAuditFields(userID, now),
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: (%s, %s)", ErrTemplatePairExists, req.OperationType, req.PaymentMode)
		}
		logger.Error("Failed to save template", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	logger.Info("Template created", slog.String("template_id", template.TemplateID), slog.String("operation_type", template.OperationType), slog.String("payment_mode", template.PaymentMode))
	return &template, nil
}

// GetTemplateByID retrieves a specific template by its ID.
func (s *templateService) GetTemplateByID(ctx context.Context, tenantID, templateID string) (*domain.OperationTemplate, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, tenantID, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find template %s: %w", templateID, err)
	}
	return template, nil
}

// FindTemplateByTypeAndMode retrieves the template driving generation
// for an (operation type, payment mode) pair.
func (s *templateService) FindTemplateByTypeAndMode(ctx context.Context, tenantID, operationType, paymentMode string) (*domain.OperationTemplate, error) {
	template, err := s.templateRepo.FindTemplateByTypeAndMode(ctx, tenantID, operationType, paymentMode)
	if err != nil {
		return nil, fmt.Errorf("failed to find template for (%s, %s): %w", operationType, paymentMode, err)
	}
	return template, nil
}

// ListTemplates retrieves templates, optionally filtered by principal account.
func (s *templateService) ListTemplates(ctx context.Context, tenantID string, params dto.ListTemplatesParams) ([]domain.OperationTemplate, error) {
	if params.Account != "" {
		templates, err := s.templateRepo.FindTemplatesByPrincipalAccount(ctx, tenantID, params.Account)
		if err != nil {
			return nil, fmt.Errorf("failed to list templates by account: %w", err)
		}
		return templates, nil
	}

	templates, err := s.templateRepo.ListTemplates(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate updates a template, re-validating references when the
// account or journal changes.
func (s *templateService) UpdateTemplate(ctx context.Context, tenantID, templateID string, req dto.UpdateTemplateRequest, userID string) (*domain.OperationTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, err := s.templateRepo.FindTemplateByID(ctx, tenantID, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find template %s: %w", templateID, err)
	}

	updated := false
	if req.PrincipalAccount != nil {
		template.PrincipalAccount = *req.PrincipalAccount
		updated = true
	}
	if req.IsStaticAccount != nil {
		template.IsStaticAccount = *req.IsStaticAccount
		updated = true
	}
	if req.PrincipalSense != nil {
		template.PrincipalSense = *req.PrincipalSense
		updated = true
	}
	if req.JournalID != nil {
		template.JournalID = *req.JournalID
		updated = true
	}
	if req.AmountBasis != nil {
		template.AmountBasis = *req.AmountBasis
		updated = true
	}
	if req.ClientCeiling != nil {
		if !req.ClientCeiling.IsPositive() {
			return nil, fmt.Errorf("%w: got %s", ErrCeilingNotPositive, req.ClientCeiling)
		}
		template.ClientCeiling = req.ClientCeiling
		updated = true
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return template, nil
	}

	if req.PrincipalAccount != nil || req.JournalID != nil {
		if err := s.validateReferences(ctx, tenantID, template.PrincipalAccount, template.JournalID); err != nil {
			return nil, err
		}
	}

	template.Touch(userID, time.Now().UTC())

	if err := s.templateRepo.UpdateTemplate(ctx, *template); err != nil {
		logger.Error("Failed to update template", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	logger.Info("Template updated", slog.String("template_id", templateID))
	return template, nil
}

// DeleteTemplate removes a template. Generated entries keep their data,
// so no referential check is needed.
func (s *templateService) DeleteTemplate(ctx context.Context, tenantID, templateID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.templateRepo.FindTemplateByID(ctx, tenantID, templateID); err != nil {
		return fmt.Errorf("failed to find template %s: %w", templateID, err)
	}

	if err := s.templateRepo.DeleteTemplate(ctx, tenantID, templateID); err != nil {
		logger.Error("Failed to delete template", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return fmt.Errorf("failed to delete template: %w", err)
	}

	logger.Info("Template deleted", slog.String("template_id", templateID))
	return nil
}

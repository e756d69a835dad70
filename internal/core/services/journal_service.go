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
	ErrJournalCodeInvalid = errors.New("journal code must be 1 to 5 uppercase letters")
	ErrJournalTypeInvalid = errors.New("journal type must be one of PURCHASE, SALE, TREASURY, MISC")
	ErrJournalInactive    = errors.New("journal is inactive")
	ErrJournalReferenced  = errors.New("journal is referenced by existing entries")
)

// journalService manages the tenant's journal registry.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	entryRepo   portsrepo.EntryReader
}

// NewJournalService creates a new JournalService. The entry reader is
// needed for the referential check on delete.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, entryRepo portsrepo.EntryReader) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo, entryRepo: entryRepo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func validJournalType(t domain.JournalType) bool {
	switch t {
	case domain.JournalPurchase, domain.JournalSale, domain.JournalTreasury, domain.JournalMisc:
		return true
	}
	return false
}

// CreateJournal creates a new journal in the tenant's registry.
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidJournalCode(req.Code) {
		return nil, fmt.Errorf("%w: %q", ErrJournalCodeInvalid, req.Code)
	}
	if !validJournalType(req.Type) {
		return nil, fmt.Errorf("%w: %q", ErrJournalTypeInvalid, req.Type)
	}

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		Label:       req.Label,
		Type:        req.Type,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: journal code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return &journal, nil
}

// GetJournalByID retrieves a journal regardless of its active flag.
func (s *journalService) GetJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	return journal, nil
}

// GetActiveJournal retrieves a journal and fails unless it is active.
// Used as a precondition gate by the posting engine.
func (s *journalService) GetActiveJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if !journal.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrJournalInactive, journal.Code)
	}
	return journal, nil
}

// ListJournals retrieves a paginated list of journals.
func (s *journalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

// UpdateJournal updates journal details. The code is immutable.
func (s *journalService) UpdateJournal(ctx context.Context, tenantID, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	updated := false
	if req.Label != nil {
		journal.Label = *req.Label
		updated = true
	}
	if req.Type != nil {
		if !validJournalType(*req.Type) {
			return nil, fmt.Errorf("%w: %q", ErrJournalTypeInvalid, *req.Type)
		}
		journal.Type = *req.Type
		updated = true
	}
	if req.IsActive != nil {
		journal.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return journal, nil
	}

	journal.Touch(userID, time.Now().UTC())

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}

	logger.Info("Journal updated", slog.String("journal_id", journalID))
	return journal, nil
}

// DeleteJournal removes a journal. Rejected when any entry references it.
func (s *journalService) DeleteJournal(ctx context.Context, tenantID, journalID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID); err != nil {
		return fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	count, err := s.entryRepo.CountEntriesByJournal(ctx, tenantID, journalID)
	if err != nil {
		logger.Error("Failed to count entries for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to check journal references: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d entries", ErrJournalReferenced, count)
	}

	if err := s.journalRepo.DeleteJournal(ctx, tenantID, journalID); err != nil {
		logger.Error("Failed to delete journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	return nil
}

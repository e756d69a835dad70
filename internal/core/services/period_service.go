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
	ErrPeriodCodeInvalid  = errors.New("period code must be of the form YYYY-MM")
	ErrPeriodRangeInvalid = errors.New("period end date must not precede start date")
	ErrPeriodOverlap      = errors.New("period range overlaps an existing period")
	ErrPeriodClosed       = errors.New("fiscal period is closed")
	ErrPeriodReferenced   = errors.New("period is referenced by existing entries")
	ErrNoOpenPeriod       = errors.New("no open period contains this date")
)

// periodService manages fiscal periods and the closing workflow.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	entryRepo  portsrepo.EntryReader
	auditSvc   portssvc.AuditSvcFacade
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, entryRepo portsrepo.EntryReader, auditSvc portssvc.AuditSvcFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo, entryRepo: entryRepo, auditSvc: auditSvc}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// checkOverlap rejects a candidate range that intersects any other period.
// excludeID skips the period being updated.
func (s *periodService) checkOverlap(ctx context.Context, tenantID string, start, end time.Time, excludeID string) error {
	overlapping, err := s.periodRepo.ListOverlapping(ctx, tenantID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check period overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("%w: conflicts with period %s", ErrPeriodOverlap, overlapping[0].Code)
	}
	return nil
}

// CreatePeriod creates a new open fiscal period.
func (s *periodService) CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidPeriodCode(req.Code) {
		return nil, fmt.Errorf("%w: %q", ErrPeriodCodeInvalid, req.Code)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: %s > %s", ErrPeriodRangeInvalid, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	if err := s.checkOverlap(ctx, tenantID, req.StartDate, req.EndDate, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:    uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsClosed:    false,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: period code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID), slog.String("code", period.Code))
	return &period, nil
}

// GetPeriodByID retrieves a period whether open or closed.
func (s *periodService) GetPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

// GetOpenPeriodByID retrieves a period and fails when it is closed.
// Used as a precondition gate by the posting engine.
func (s *periodService) GetOpenPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: %s", ErrPeriodClosed, period.Code)
	}
	return period, nil
}

// FindOpenPeriodForDate retrieves the open period containing a date.
func (s *periodService) FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindOpenPeriodForDate(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenPeriod, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find open period: %w", err)
	}
	return period, nil
}

// ListPeriods retrieves a paginated list of periods.
func (s *periodService) ListPeriods(ctx context.Context, tenantID string, params dto.ListPeriodsParams) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// UpdatePeriod updates code and range of an open period, re-checking
// overlap against all other periods.
func (s *periodService) UpdatePeriod(ctx context.Context, tenantID, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.IsClosed {
		return nil, fmt.Errorf("%w: %s", ErrPeriodClosed, period.Code)
	}

	updated := false
	if req.Code != nil {
		if !domain.ValidPeriodCode(*req.Code) {
			return nil, fmt.Errorf("%w: %q", ErrPeriodCodeInvalid, *req.Code)
		}
		period.Code = *req.Code
		updated = true
	}
	if req.StartDate != nil {
		period.StartDate = *req.StartDate
		updated = true
	}
	if req.EndDate != nil {
		period.EndDate = *req.EndDate
		updated = true
	}

	if !updated {
		return period, nil
	}

	if period.EndDate.Before(period.StartDate) {
		return nil, fmt.Errorf("%w: %s > %s", ErrPeriodRangeInvalid, period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}
	if err := s.checkOverlap(ctx, tenantID, period.StartDate, period.EndDate, periodID); err != nil {
		return nil, err
	}

	period.Touch(userID, time.Now().UTC())

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: period code %s already exists", apperrors.ErrDuplicate, period.Code)
		}
		logger.Error("Failed to update period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to update period: %w", err)
	}

	logger.Info("Period updated", slog.String("period_id", periodID))
	return period, nil
}

// ClosePeriod transitions a period to closed. The transition is terminal
// and guarded by a conditional update, so two concurrent closes cannot
// both succeed.
func (s *periodService) ClosePeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	closed, err := s.periodRepo.ClosePeriod(ctx, tenantID, periodID, userID, now)
	if err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to close period: %w", err)
	}
	if !closed {
		return nil, fmt.Errorf("%w: period %s is already closed", ErrPeriodClosed, periodID)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload closed period %s: %w", periodID, err)
	}

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID: tenantID,
		Action:   domain.AuditClose,
		Actor:    userID,
		Details:  fmt.Sprintf("closed fiscal period %s", period.Code),
	})

	logger.Info("Period closed", slog.String("period_id", periodID), slog.String("code", period.Code))
	return period, nil
}

// DeletePeriod removes an open period that no entry references.
func (s *periodService) DeletePeriod(ctx context.Context, tenantID, periodID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.IsClosed {
		return fmt.Errorf("%w: %s", ErrPeriodClosed, period.Code)
	}

	count, err := s.entryRepo.CountEntriesByPeriod(ctx, tenantID, periodID)
	if err != nil {
		logger.Error("Failed to count entries for period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return fmt.Errorf("failed to check period references: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d entries", ErrPeriodReferenced, count)
	}

	if err := s.periodRepo.DeletePeriod(ctx, tenantID, periodID); err != nil {
		logger.Error("Failed to delete period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return fmt.Errorf("failed to delete period: %w", err)
	}

	logger.Info("Period deleted", slog.String("period_id", periodID))
	return nil
}

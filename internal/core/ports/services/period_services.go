package services

import (
	"context"
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	"github.com/mkamgno/ohada_ledger/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal period data.
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific period by its ID.
	GetPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// GetOpenPeriodByID retrieves a period and fails unless it is open.
	// Used as a precondition gate by the posting engine.
	GetOpenPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// FindOpenPeriodForDate retrieves the open period containing a date.
	FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves a paginated list of periods.
	ListPeriods(ctx context.Context, tenantID string, params dto.ListPeriodsParams) ([]domain.FiscalPeriod, error)
}

// PeriodWriterSvc defines write operations for fiscal period data.
type PeriodWriterSvc interface {
	// CreatePeriod persists a new open period.
	CreatePeriod(ctx context.Context, tenantID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// UpdatePeriod updates an open period subject to overlap/uniqueness rules.
	UpdatePeriod(ctx context.Context, tenantID, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// ClosePeriod transitions a period to closed. Terminal.
	ClosePeriod(ctx context.Context, tenantID, periodID, userID string) (*domain.FiscalPeriod, error)

	// DeletePeriod removes an open period that no entry references.
	DeletePeriod(ctx context.Context, tenantID, periodID, userID string) error
}

// PeriodSvcFacade combines all fiscal period service interfaces.
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}

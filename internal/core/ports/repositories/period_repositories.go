package repositories

import (
	"context"
	"time"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data.
type PeriodReader interface {
	// FindPeriodByID retrieves a specific period by its unique identifier.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodByCode retrieves a period by its YYYY-MM code within a tenant.
	FindPeriodByCode(ctx context.Context, tenantID, code string) (*domain.FiscalPeriod, error)

	// FindOpenPeriodForDate retrieves the open period whose range contains the date.
	FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListOverlapping returns periods whose ranges intersect [start, end],
	// excluding excludeID when non-empty (used on updates).
	ListOverlapping(ctx context.Context, tenantID string, start, end time.Time, excludeID string) ([]domain.FiscalPeriod, error)

	// ListPeriods retrieves a paginated list of periods for a tenant.
	ListPeriods(ctx context.Context, tenantID string, limit, offset int) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data.
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriod updates code and range of an open period.
	UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// ClosePeriod flips is_closed from false to true. It returns false
	// when the period was already closed (conditional update, no race).
	ClosePeriod(ctx context.Context, tenantID, periodID, userID string, now time.Time) (bool, error)

	// DeletePeriod removes an open period. Callers must check references first.
	DeletePeriod(ctx context.Context, tenantID, periodID string) error
}

// PeriodRepositoryFacade combines all fiscal period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, tenant_id, code, start_date, end_date, is_closed, closed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (domain.FiscalPeriod, error) {
	var p domain.FiscalPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.TenantID,
		&p.Code,
		&p.StartDate,
		&p.EndDate,
		&p.IsClosed,
		&p.ClosedAt,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SavePeriod inserts a new period. The (tenant, code) pair is unique.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID,
		period.TenantID,
		period.Code,
		period.StartDate,
		period.EndDate,
		period.IsClosed,
		period.ClosedAt,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert period "+period.Code, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND period_id = $2;
	`
	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by ID "+periodID, err)
	}
	return &period, nil
}

// FindPeriodByCode retrieves a period by its YYYY-MM code.
func (r *PgxPeriodRepository) FindPeriodByCode(ctx context.Context, tenantID, code string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND code = $2;
	`
	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by code "+code, err)
	}
	return &period, nil
}

// FindOpenPeriodForDate retrieves the open period containing the date.
// Ranges never overlap, so at most one row matches.
func (r *PgxPeriodRepository) FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND is_closed = FALSE AND start_date <= $2 AND end_date >= $2;
	`
	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open period for date", err)
	}
	return &period, nil
}

// ListOverlapping returns periods intersecting [start, end], optionally
// excluding the period being updated.
func (r *PgxPeriodRepository) ListOverlapping(ctx context.Context, tenantID string, start, end time.Time, excludeID string) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND start_date <= $3 AND end_date >= $2 AND ($4 = '' OR period_id <> $4)
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, start, end, excludeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overlapping periods", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read period rows", err)
	}
	return periods, nil
}

// ListPeriods retrieves a paginated list of periods, newest range first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, tenantID string, limit, offset int) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read period rows", err)
	}
	return periods, nil
}

// UpdatePeriod updates code and range of a period.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	query := `
		UPDATE fiscal_periods
		SET code = $3, start_date = $4, end_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND period_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		period.TenantID,
		period.PeriodID,
		period.Code,
		period.StartDate,
		period.EndDate,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update period "+period.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClosePeriod flips is_closed with a conditional update so two concurrent
// closes cannot both report success.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, tenantID, periodID, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE fiscal_periods
		SET is_closed = TRUE, closed_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND period_id = $2 AND is_closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, periodID, now, userID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to close period "+periodID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeletePeriod removes a period row. The service layer has already
// verified that the period is open and unreferenced.
func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, tenantID, periodID string) error {
	query := `DELETE FROM fiscal_periods WHERE tenant_id = $1 AND period_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

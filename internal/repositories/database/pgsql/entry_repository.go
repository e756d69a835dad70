package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	"github.com/mkamgno/ohada_ledger/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry and
// entry line data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, tenant_id, number, label, entry_date, journal_id, period_id, reference, notes, total_debit, total_credit, status, validated_at, validated_by, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, tenant_id, entry_id, account_number, label, sense, debit, credit, notes, entry_date, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (domain.Entry, error) {
	var e domain.Entry
	var validatedBy *string
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.Number,
		&e.Label,
		&e.EntryDate,
		&e.JournalID,
		&e.PeriodID,
		&e.Reference,
		&e.Notes,
		&e.TotalDebit,
		&e.TotalCredit,
		&e.Status,
		&e.ValidatedAt,
		&validatedBy,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if validatedBy != nil {
		e.ValidatedBy = *validatedBy
	}
	return e, err
}

func scanLine(row pgx.Row) (domain.EntryLine, error) {
	var l domain.EntryLine
	err := row.Scan(
		&l.LineID,
		&l.TenantID,
		&l.EntryID,
		&l.AccountNumber,
		&l.Label,
		&l.Sense,
		&l.Debit,
		&l.Credit,
		&l.Notes,
		&l.EntryDate,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

const insertLineQuery = `
	INSERT INTO entry_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func lineArgs(line domain.EntryLine) []any {
	return []any{
		line.LineID,
		line.TenantID,
		line.EntryID,
		line.AccountNumber,
		line.Label,
		line.Sense,
		line.Debit,
		line.Credit,
		line.Notes,
		line.EntryDate,
		line.CreatedAt,
		line.CreatedBy,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
	}
}

// SaveEntry persists an entry and its lines in one database transaction,
// so a generated entry can never land without its lines.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op after a successful commit

	var validatedBy *string
	if entry.ValidatedBy != "" {
		validatedBy = &entry.ValidatedBy
	}

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.TenantID,
		entry.Number,
		entry.Label,
		entry.EntryDate,
		entry.JournalID,
		entry.PeriodID,
		entry.Reference,
		entry.Notes,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.Status,
		entry.ValidatedAt,
		validatedBy,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	if len(lines) > 0 {
		batch := &pgx.Batch{}
		for _, line := range lines {
			batch.Queue(insertLineQuery, lineArgs(line)...)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry without its lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return &entry, nil
}

// ListEntries retrieves a filtered page of entries, newest entry date
// first. The pagination token carries the (entry_date, created_at) sort
// key of the last row of the previous page.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1
	`
	args := []any{tenantID}

	if filter.JournalID != "" {
		args = append(args, filter.JournalID)
		query += fmt.Sprintf(` AND journal_id = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	if filter.UnvalidatedOnly {
		query += ` AND status = 'DRAFT'`
	}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreated, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, tokenDate, tokenCreated)
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether a next page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read entry rows", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeEntryToken(last.EntryDate, last.CreatedAt)
		newToken = &token
	}
	return entries, newToken, nil
}

// CountEntriesByJournal returns how many entries reference a journal.
func (r *PgxEntryRepository) CountEntriesByJournal(ctx context.Context, tenantID, journalID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM journal_entries WHERE tenant_id = $1 AND journal_id = $2;`
	if err := r.Pool.QueryRow(ctx, query, tenantID, journalID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for journal "+journalID, err)
	}
	return count, nil
}

// CountEntriesByPeriod returns how many entries reference a period.
func (r *PgxEntryRepository) CountEntriesByPeriod(ctx context.Context, tenantID, periodID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM journal_entries WHERE tenant_id = $1 AND period_id = $2;`
	if err := r.Pool.QueryRow(ctx, query, tenantID, periodID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for period "+periodID, err)
	}
	return count, nil
}

// UpdateEntryTotals refreshes the denormalized totals after a line change.
func (r *PgxEntryRepository) UpdateEntryTotals(ctx context.Context, tenantID, entryID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET total_debit = $3, total_credit = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, entryID, totalDebit, totalCredit, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkValidated flips the entry status with a conditional update. Of two
// concurrent validations exactly one sees RowsAffected == 1.
func (r *PgxEntryRepository) MarkValidated(ctx context.Context, tenantID, entryID, userID string, now time.Time, totalDebit, totalCredit decimal.Decimal) (bool, error) {
	query := `
		UPDATE journal_entries
		SET status = 'VALIDATED', validated_at = $3, validated_by = $4,
		    total_debit = $5, total_credit = $6, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, entryID, now, userID, totalDebit, totalCredit)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to validate entry "+entryID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindLineByID retrieves one line of an entry.
func (r *PgxEntryRepository) FindLineByID(ctx context.Context, tenantID, entryID, lineID string) (*domain.EntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM entry_lines
		WHERE tenant_id = $1 AND entry_id = $2 AND line_id = $3;
	`
	line, err := scanLine(r.Pool.QueryRow(ctx, query, tenantID, entryID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find line "+lineID, err)
	}
	return &line, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, tenantID, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM entry_lines
		WHERE tenant_id = $1 AND entry_id = $2
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.EntryLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read line rows", err)
	}
	return lines, nil
}

// SaveLine inserts a new line.
func (r *PgxEntryRepository) SaveLine(ctx context.Context, line domain.EntryLine) error {
	_, err := r.Pool.Exec(ctx, insertLineQuery, lineArgs(line)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert line "+line.LineID, err)
	}
	return nil
}

// UpdateLine updates the mutable fields of a line.
func (r *PgxEntryRepository) UpdateLine(ctx context.Context, line domain.EntryLine) error {
	query := `
		UPDATE entry_lines
		SET account_number = $4, label = $5, sense = $6, debit = $7, credit = $8,
		    notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE tenant_id = $1 AND entry_id = $2 AND line_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query,
		line.TenantID,
		line.EntryID,
		line.LineID,
		line.AccountNumber,
		line.Label,
		line.Sense,
		line.Debit,
		line.Credit,
		line.Notes,
		line.LastUpdatedAt,
		line.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update line "+line.LineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLine removes a line from a draft entry.
func (r *PgxEntryRepository) DeleteLine(ctx context.Context, tenantID, entryID, lineID string) error {
	query := `DELETE FROM entry_lines WHERE tenant_id = $1 AND entry_id = $2 AND line_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, entryID, lineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete line "+lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
